// Package handler 提供 HTTP 请求处理器
// 本文件处理目的地相关的 API 请求
package handler

import (
	"strconv"

	"travel_together_server/internal/service"

	"github.com/gin-gonic/gin"
)

// DestinationHandler 目的地请求处理器
type DestinationHandler struct {
	destinationSvc service.DestinationService
}

// NewDestinationHandler 创建目的地处理器实例
func NewDestinationHandler(destinationSvc service.DestinationService) *DestinationHandler {
	return &DestinationHandler{destinationSvc: destinationSvc}
}

// GetDestinationList 获取全部目的地
// GET /destination/getDestinationList
// 响应: []respond.DestinationRespond
func (h *DestinationHandler) GetDestinationList(c *gin.Context) {
	data, err := h.destinationSvc.GetDestinationList()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetPopularDestinations 获取热门目的地排行
// GET /destination/getPopularDestinations?limit=10
// 响应: []respond.PopularDestinationRespond
func (h *DestinationHandler) GetPopularDestinations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	data, err := h.destinationSvc.GetPopularDestinations(limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
