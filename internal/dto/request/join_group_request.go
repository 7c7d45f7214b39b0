package request

// JoinGroupRequest 加入群组请求
// 公开群直接入群，私密群进入待审核状态
// 使用位置:
//   - internal/handler/group_handler.go: JoinGroup
//   - internal/service/group/service.go: JoinGroup
type JoinGroupRequest struct {
	// UserId 由 handler 从登录态填入，不从请求体读取
	UserId  string `json:"-"`
	GroupId string `json:"group_id" binding:"required"`
}
