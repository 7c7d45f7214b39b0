// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"travel_together_server/internal/handler"
	"travel_together_server/internal/infrastructure/middleware"
)

// Router 路由管理器，持有 Handler 聚合实例
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 公开路由（注册/登录/令牌刷新）不需要认证，其余接口统一走 JWT 中间件
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	// 公开路由
	rt.RegisterPublicUserRoutes(r)

	// 需要认证的路由组
	authorized := r.Group("/", middleware.JWTAuth())
	{
		rt.RegisterUserRoutes(authorized)         // 用户路由
		rt.RegisterGroupRoutes(authorized)        // 群组路由
		rt.RegisterMessageRoutes(authorized)      // 消息路由
		rt.RegisterDestinationRoutes(authorized)  // 目的地路由
		rt.RegisterChatbotRoutes(authorized)      // 旅行助手路由
		rt.RegisterNotificationRoutes(authorized) // 通知路由
		rt.RegisterWebSocketRoutes(authorized)    // WebSocket 路由
	}
}
