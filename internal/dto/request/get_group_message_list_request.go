package request

// GetGroupMessageListRequest 获取群聊消息记录请求
// Limit 为 0 时取默认条数
// 使用位置:
//   - internal/handler/message_handler.go: GetGroupMessageList
type GetGroupMessageListRequest struct {
	// UserId 由 handler 从登录态填入，不从请求参数读取
	UserId  string `json:"-" form:"-"`
	GroupId string `json:"group_id" form:"group_id" binding:"required"`
	Limit   int    `json:"limit" form:"limit"`
}
