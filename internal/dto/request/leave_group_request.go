package request

// LeaveGroupRequest 退出群组请求
// 退群人取登录态，请求体只带群 ID
// 使用位置:
//   - internal/handler/group_handler.go: LeaveGroup
type LeaveGroupRequest struct {
	GroupId string `json:"group_id" binding:"required"`
}
