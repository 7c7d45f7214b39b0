// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 相关路由（需要认证）
func (rt *Router) RegisterWebSocketRoutes(rg *gin.RouterGroup) {
	wsGroup := rg.Group("/ws")
	{
		wsGroup.GET("/login", rt.handlers.Ws.WsLogin)    // 建立 WebSocket 连接
		wsGroup.POST("/logout", rt.handlers.Ws.WsLogout) // 断开 WebSocket 连接
	}
}
