// Package handler 提供 HTTP 请求处理器
// 本文件处理站内通知相关的 API 请求
package handler

import (
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 站内通知请求处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建通知处理器实例
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// GetNotificationList 获取当前用户的通知列表
// GET /notification/getNotificationList
// 响应: []respond.NotificationRespond（时间倒序）
func (h *NotificationHandler) GetNotificationList(c *gin.Context) {
	data, err := h.notificationSvc.GetNotificationList(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 标记通知已读
// POST /notification/markRead
// 请求体: request.MarkNotificationReadRequest
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req request.MarkNotificationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.notificationSvc.MarkRead(c.GetString("user_id"), req.Uuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
