package respond

// RegisterRespond 用户注册响应
// 使用位置:
//   - internal/service/user/service.go: Register
type RegisterRespond struct {
	Uuid      string `json:"uuid"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Gender    string `json:"gender"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at"`
	Status    int8   `json:"status"`
}
