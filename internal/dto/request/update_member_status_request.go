package request

// UpdateMemberStatusRequest 群主审批成员状态请求
// Status 取 join_status_enum 中的值：通过/拒绝/拉黑
// 使用位置:
//   - internal/handler/group_handler.go: UpdateMemberStatus
//   - internal/service/group/service.go: UpdateMemberStatus
type UpdateMemberStatusRequest struct {
	// OwnerId 由 handler 从登录态填入，不从请求体读取
	OwnerId string `json:"-"`
	GroupId string `json:"group_id" binding:"required"`
	UserId  string `json:"user_id" binding:"required"`
	Status  int8   `json:"status"`
}
