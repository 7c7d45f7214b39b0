package respond

// GetGroupMemberListRespond 群成员列表的单项
// 使用位置:
//   - internal/service/group/service.go: GetGroupMemberList
type GetGroupMemberListRespond struct {
	UserId   string `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Role     int8   `json:"role"`
	JoinedAt string `json:"joined_at"`
	IsOnline bool   `json:"is_online"`
}
