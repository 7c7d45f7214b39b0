package request

// CreateGroupRequest 创建旅行群组请求
// 使用位置:
//   - internal/handler/group_handler.go: CreateGroup
//   - internal/service/group/service.go: CreateGroup
type CreateGroupRequest struct {
	// OwnerId 由 handler 从登录态填入，不从请求体读取
	OwnerId         string `json:"-"`
	Name            string `json:"name" binding:"required,max=64"`
	Description     string `json:"description"`
	DestinationName string `json:"destination_name" binding:"required"`
	Visibility      int8   `json:"visibility"`
	MaxMembers      int    `json:"max_members"`
}
