// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"travel_together_server/internal/dao/mysql/repository"
	myredis "travel_together_server/internal/dao/redis"
	"travel_together_server/internal/infrastructure/sms"
	"travel_together_server/internal/service/chatbot"
	"travel_together_server/internal/service/destination"
	"travel_together_server/internal/service/group"
	"travel_together_server/internal/service/message"
	"travel_together_server/internal/service/notification"
	"travel_together_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此聚合访问各个 Service
type Services struct {
	User         UserService         // 用户 Service
	Group        GroupService        // 群组 Service
	Message      MessageService      // 消息 Service
	Destination  DestinationService  // 目的地 Service
	Chatbot      ChatbotService      // 旅行助手 Service
	Notification NotificationService // 通知 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合、缓存、短信服务和消息发布器
//  2. 创建各个 Service 实例，注入依赖
//  3. 返回 Services 聚合
//
// repos: Repository 层聚合实例
// cacheService: 异步缓存服务
// smsService: 短信服务
// publisher: 消息发布器（聊天 Broker）
// 返回: Services 聚合指针
func NewServices(
	repos *repository.Repositories,
	cacheService myredis.AsyncCacheService,
	smsService sms.SmsService,
	publisher message.MessagePublisher,
) *Services {
	// 创建各个 Service 实例
	userSvc := user.NewUserService(repos, cacheService, smsService)
	groupSvc := group.NewGroupService(repos, cacheService)
	messageSvc := message.NewMessageService(repos, cacheService, publisher)
	destinationSvc := destination.NewDestinationService(repos, cacheService)
	chatbotSvc := chatbot.NewChatbotService(destinationSvc)
	notificationSvc := notification.NewNotificationService(repos)

	// 聚合并返回
	return &Services{
		User:         userSvc,
		Group:        groupSvc,
		Message:      messageSvc,
		Destination:  destinationSvc,
		Chatbot:      chatbotSvc,
		Notification: notificationSvc,
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.User.Login() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository、缓存、短信、聊天服务初始化之后
func InitServices(
	repos *repository.Repositories,
	cacheService myredis.AsyncCacheService,
	smsService sms.SmsService,
	publisher message.MessagePublisher,
) {
	Svc = NewServices(repos, cacheService, smsService, publisher)
}
