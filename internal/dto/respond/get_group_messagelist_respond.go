package respond

// GetGroupMessageListRespond 群聊消息记录的单项
// 使用位置:
//   - internal/service/message/service.go: GetGroupMessageList
type GetGroupMessageListRespond struct {
	Uuid     int64  `json:"uuid"`
	GroupId  string `json:"group_id"`
	SendId   string `json:"send_id"`
	SendName string `json:"send_name"`
	Content  string `json:"content"`
	SendAt   string `json:"send_at"`
}
