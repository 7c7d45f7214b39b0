// Package handler 提供 HTTP 请求处理器
// 本文件处理群消息相关的 API 请求
package handler

import (
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler 群消息请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// SendGroupMessage 发送群消息（HTTP 通道）
// POST /message/sendGroupMessage
// 请求体: request.SendGroupMessageRequest
// 消息经 Broker 异步落库和分发，成功仅代表已受理
func (h *MessageHandler) SendGroupMessage(c *gin.Context) {
	var req request.SendGroupMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	// 发送者一律以 Token 里的身份为准
	req.SendId = c.GetString("user_id")
	if err := h.messageSvc.SendGroupMessage(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetGroupMessageList 获取群聊消息记录
// GET /message/getGroupMessageList?group_id=xxx&limit=50
// 响应: []respond.GetGroupMessageListRespond（时间升序）
func (h *MessageHandler) GetGroupMessageList(c *gin.Context) {
	var req request.GetGroupMessageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	req.UserId = c.GetString("user_id")
	data, err := h.messageSvc.GetGroupMessageList(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
