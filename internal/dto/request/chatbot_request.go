package request

// ChatbotRequest 旅行助手提问请求
// 使用位置:
//   - internal/handler/chatbot_handler.go: Ask
//   - internal/service/chatbot/service.go: Reply
type ChatbotRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}
