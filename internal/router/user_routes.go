// Package router 提供 HTTP 路由注册
// 本文件定义用户相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicUserRoutes 注册无需认证的用户路由
// 注册、登录、验证码、令牌刷新都发生在拿到 Token 之前
func (rt *Router) RegisterPublicUserRoutes(r *gin.Engine) {
	userGroup := r.Group("/user")
	{
		userGroup.POST("/register", rt.handlers.User.Register)         // 用户注册
		userGroup.POST("/login", rt.handlers.User.Login)               // 密码登录
		userGroup.POST("/smsLogin", rt.handlers.User.SmsLogin)         // 短信验证码登录
		userGroup.POST("/sendSmsCode", rt.handlers.User.SendSmsCode)   // 发送短信验证码
		userGroup.POST("/refreshToken", rt.handlers.User.RefreshToken) // 刷新访问令牌
	}
}

// RegisterUserRoutes 注册需要认证的用户路由
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/getUserInfo", rt.handlers.User.GetUserInfo)        // 获取用户信息
		userGroup.POST("/updateUserInfo", rt.handlers.User.UpdateUserInfo) // 修改用户信息
		userGroup.POST("/deleteUser", rt.handlers.User.DeleteUser)         // 注销账号
	}
}
