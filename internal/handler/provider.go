// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 通过构造函数注入 Service 依赖
package handler

import (
	"travel_together_server/internal/service"
	"travel_together_server/internal/service/chat"
)

// Handlers 聚合所有 Handler 实例
// Router 层通过此结构访问各个 Handler
type Handlers struct {
	User         *UserHandler
	Group        *GroupHandler
	Message      *MessageHandler
	Destination  *DestinationHandler
	Chatbot      *ChatbotHandler
	Notification *NotificationHandler
	Ws           *WsHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// svc: Service 层聚合实例
// broker: 聊天消息 Broker（WebSocket 连接注册用）
// 返回: Handlers 聚合指针
func NewHandlers(svc *service.Services, broker chat.MessageBroker) *Handlers {
	return &Handlers{
		User:         NewUserHandler(svc.User),
		Group:        NewGroupHandler(svc.Group),
		Message:      NewMessageHandler(svc.Message),
		Destination:  NewDestinationHandler(svc.Destination),
		Chatbot:      NewChatbotHandler(svc.Chatbot),
		Notification: NewNotificationHandler(svc.Notification),
		Ws:           NewWsHandler(broker),
	}
}
