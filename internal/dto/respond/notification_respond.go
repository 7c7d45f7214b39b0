package respond

// NotificationRespond 通知列表的单项
// 使用位置:
//   - internal/service/notification/service.go: GetNotificationList
type NotificationRespond struct {
	Uuid      string `json:"uuid"`
	Kind      int8   `json:"kind"`
	Content   string `json:"content"`
	GroupId   string `json:"group_id"`
	IsRead    int8   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
