package respond

// GetGroupInfoRespond 群组详情响应
// 使用位置:
//   - internal/service/group/service.go: GetGroupInfo
type GetGroupInfoRespond struct {
	Uuid            string `json:"uuid"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Visibility      int8   `json:"visibility"`
	OwnerId         string `json:"owner_id"`
	DestinationName string `json:"destination_name"`
	MemberCnt       int    `json:"member_cnt"`
	MaxMembers      int    `json:"max_members"`
	Status          int8   `json:"status"`
	CreatedAt       string `json:"created_at"`
}
