package respond

// ChatbotRespond 旅行助手回复响应
// 使用位置:
//   - internal/service/chatbot/service.go: Reply
type ChatbotRespond struct {
	Reply string `json:"reply"`
}
