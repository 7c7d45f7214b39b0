// Package router 提供 HTTP 路由注册
// 本文件定义目的地相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterDestinationRoutes 注册目的地相关路由（需要认证）
func (rt *Router) RegisterDestinationRoutes(rg *gin.RouterGroup) {
	destinationGroup := rg.Group("/destination")
	{
		destinationGroup.GET("/getDestinationList", rt.handlers.Destination.GetDestinationList)         // 目的地列表
		destinationGroup.GET("/getPopularDestinations", rt.handlers.Destination.GetPopularDestinations) // 热门排行
	}
}
