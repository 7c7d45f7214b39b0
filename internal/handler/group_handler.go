// Package handler 提供 HTTP 请求处理器
// 本文件处理旅行群组相关的 API 请求
package handler

import (
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/service"
	"travel_together_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// GroupHandler 群组请求处理器
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建群组处理器实例
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// CreateGroup 创建旅行群组
// POST /group/createGroup
// 请求体: request.CreateGroupRequest，群主为当前登录用户
// 响应: 新群 UUID
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	// 操作人一律以 Token 里的身份为准，请求体里的同名字段不可信
	req.OwnerId = c.GetString("user_id")
	groupId, err := h.groupSvc.CreateGroup(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"group_id": groupId})
}

// JoinGroup 加入群组
// POST /group/joinGroup
// 请求体: request.JoinGroupRequest
// 响应: 本次操作后的成员状态（公开群为已通过，私密群为待审核）
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	var req request.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	req.UserId = c.GetString("user_id")
	status, err := h.groupSvc.JoinGroup(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"join_status": status})
}

// UpdateMemberStatus 群主审批成员状态
// POST /group/updateMemberStatus
// 请求体: request.UpdateMemberStatusRequest
func (h *GroupHandler) UpdateMemberStatus(c *gin.Context) {
	var req request.UpdateMemberStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	req.OwnerId = c.GetString("user_id")
	if err := h.groupSvc.UpdateMemberStatus(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// LeaveGroup 退出群组
// POST /group/leaveGroup
// 请求体: request.LeaveGroupRequest
func (h *GroupHandler) LeaveGroup(c *gin.Context) {
	var req request.LeaveGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.LeaveGroup(c.GetString("user_id"), req.GroupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DismissGroup 解散群组
// POST /group/dismissGroup
// 请求体: request.DismissGroupRequest
func (h *GroupHandler) DismissGroup(c *gin.Context) {
	var req request.DismissGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.DismissGroup(c.GetString("user_id"), req.GroupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetGroupList 获取群组浏览列表
// GET /group/getGroupList
// 响应: []respond.GetGroupListRespond，按当前登录用户标注自己的入群状态
func (h *GroupHandler) GetGroupList(c *gin.Context) {
	data, err := h.groupSvc.GetGroupList(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupInfo 获取群组详情
// GET /group/getGroupInfo?group_id=xxx
// 响应: respond.GetGroupInfoRespond
func (h *GroupHandler) GetGroupInfo(c *gin.Context) {
	groupId := c.Query("group_id")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.GetGroupInfo(groupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupMemberList 获取群成员列表
// GET /group/getGroupMemberList?group_id=xxx
// 响应: []respond.GetGroupMemberListRespond
func (h *GroupHandler) GetGroupMemberList(c *gin.Context) {
	groupId := c.Query("group_id")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.GetGroupMemberList(groupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
