package request

// UpdateUserInfoRequest 更新用户信息请求
// 只有这里列出的字段允许修改，Service 层按白名单落库
// 使用位置:
//   - internal/handler/user_handler.go: UpdateUserInfo
//   - internal/service/user/service.go: UpdateUserInfo
type UpdateUserInfoRequest struct {
	// Uuid 由 handler 从登录态填入，不从请求体读取
	Uuid   string `json:"-"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}
