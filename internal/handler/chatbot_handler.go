// Package handler 提供 HTTP 请求处理器
// 本文件处理旅行助手相关的 API 请求
package handler

import (
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatbotHandler 旅行助手请求处理器
type ChatbotHandler struct {
	chatbotSvc service.ChatbotService
}

// NewChatbotHandler 创建旅行助手处理器实例
func NewChatbotHandler(chatbotSvc service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbotSvc: chatbotSvc}
}

// Ask 向旅行助手提问
// POST /chatbot/ask
// 请求体: request.ChatbotRequest
// 响应: respond.ChatbotRespond
func (h *ChatbotHandler) Ask(c *gin.Context) {
	var req request.ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatbotSvc.Reply(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
