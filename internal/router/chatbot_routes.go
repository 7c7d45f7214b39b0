// Package router 提供 HTTP 路由注册
// 本文件定义旅行助手相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterChatbotRoutes 注册旅行助手相关路由（需要认证）
func (rt *Router) RegisterChatbotRoutes(rg *gin.RouterGroup) {
	chatbotGroup := rg.Group("/chatbot")
	{
		chatbotGroup.POST("/ask", rt.handlers.Chatbot.Ask) // 向助手提问
	}
}
