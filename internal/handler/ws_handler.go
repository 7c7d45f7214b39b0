// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	"net/http"

	"travel_together_server/internal/service/chat"
	"travel_together_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WsHandler WebSocket 请求处理器
// 持有消息 Broker，连接的注册与消息投递都经它完成
type WsHandler struct {
	broker chat.MessageBroker
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(broker chat.MessageBroker) *WsHandler {
	return &WsHandler{broker: broker}
}

// WsLogin WebSocket 登录（升级 HTTP 连接为 WebSocket）
// GET /ws/login
// 连接身份取自登录态，升级后注册到在线用户列表，开始收发消息
func (h *WsHandler) WsLogin(c *gin.Context) {
	clientId := c.GetString("user_id")
	if clientId == "" {
		zap.L().Error("clientId获取失败")
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeInvalidParam,
			"msg":  "clientId获取失败",
		})
		return
	}
	if err := chat.NewClientInit(c, clientId, h.broker); err != nil {
		zap.L().Error(err.Error())
	}
}

// WsLogout WebSocket 登出
// POST /ws/logout
// 断开当前登录用户的连接，无需请求体
func (h *WsHandler) WsLogout(c *gin.Context) {
	if err := chat.ClientLogout(c.GetString("user_id"), h.broker); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
