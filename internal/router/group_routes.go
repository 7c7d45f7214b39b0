// Package router 提供 HTTP 路由注册
// 本文件定义旅行群组相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes 注册群组相关路由（需要认证）
// 包括群组生命周期和成员状态流转
func (rt *Router) RegisterGroupRoutes(rg *gin.RouterGroup) {
	groupGroup := rg.Group("/group")
	{
		// ===== 查询 =====
		groupGroup.GET("/getGroupList", rt.handlers.Group.GetGroupList)             // 浏览群组列表
		groupGroup.GET("/getGroupInfo", rt.handlers.Group.GetGroupInfo)             // 群组详情
		groupGroup.GET("/getGroupMemberList", rt.handlers.Group.GetGroupMemberList) // 群成员列表

		// ===== 生命周期 =====
		groupGroup.POST("/createGroup", rt.handlers.Group.CreateGroup)   // 创建群组
		groupGroup.POST("/dismissGroup", rt.handlers.Group.DismissGroup) // 解散群组（群主）

		// ===== 成员状态流转 =====
		groupGroup.POST("/joinGroup", rt.handlers.Group.JoinGroup)                   // 加入/申请加入
		groupGroup.POST("/updateMemberStatus", rt.handlers.Group.UpdateMemberStatus) // 群主审批
		groupGroup.POST("/leaveGroup", rt.handlers.Group.LeaveGroup)                 // 退出群组
	}
}
