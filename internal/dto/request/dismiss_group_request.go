package request

// DismissGroupRequest 解散群组请求
// 仅群主可操作，操作人取登录态
// 使用位置:
//   - internal/handler/group_handler.go: DismissGroup
type DismissGroupRequest struct {
	GroupId string `json:"group_id" binding:"required"`
}
