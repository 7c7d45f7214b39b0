package request

// SendGroupMessageRequest 发送群消息请求（HTTP 通道）
// 使用位置:
//   - internal/handler/message_handler.go: SendGroupMessage
//   - internal/service/message/service.go: SendGroupMessage
type SendGroupMessageRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	// SendId 由 handler 从登录态填入，不从请求体读取
	SendId  string `json:"-"`
	Content string `json:"content" binding:"required,max=2000"`
}
