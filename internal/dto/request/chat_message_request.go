package request

// ChatMessageRequest 聊天消息请求 (WebSocket)
// 使用位置:
//   - internal/service/chat/ws_gateway.go: Read
//   - internal/service/chat/channel_broker.go: Start
//   - internal/service/chat/kafka_consumer.go: Start
type ChatMessageRequest struct {
	GroupId  string `json:"group_id" binding:"required"`
	SendId   string `json:"send_id" binding:"required"`
	SendName string `json:"send_name"`
	Content  string `json:"content"`
}
