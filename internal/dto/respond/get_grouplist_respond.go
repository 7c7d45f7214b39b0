package respond

// GetGroupListRespond 群组浏览列表的单项
// 使用位置:
//   - internal/service/group/service.go: GetGroupList
type GetGroupListRespond struct {
	Uuid            string `json:"uuid"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Visibility      int8   `json:"visibility"`
	OwnerId         string `json:"owner_id"`
	OwnerName       string `json:"owner_name"`
	DestinationName string `json:"destination_name"`
	MemberCnt       int    `json:"member_cnt"`
	MaxMembers      int    `json:"max_members"`
	IsFull          bool   `json:"is_full"`
	IsMember        bool   `json:"is_member"`
}
