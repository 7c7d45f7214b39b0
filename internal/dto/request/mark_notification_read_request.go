package request

// MarkNotificationReadRequest 标记通知已读请求
// 通知归属人取登录态，请求体只带通知 ID
// 使用位置:
//   - internal/handler/notification_handler.go: MarkRead
type MarkNotificationReadRequest struct {
	Uuid string `json:"uuid" binding:"required"`
}
