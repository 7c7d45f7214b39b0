package respond

// LoginRespond 用户登录响应
// 使用位置:
//   - internal/service/user/service.go: Login, SmsLogin
type LoginRespond struct {
	Uuid           string `json:"uuid"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Telephone      string `json:"telephone"`
	Gender         string `json:"gender"`
	Bio            string `json:"bio"`
	Avatar         string `json:"avatar"`
	CurrentGroupId string `json:"current_group_id"`
	IsGroupOwner   int8   `json:"is_group_owner"`
	CreatedAt      string `json:"created_at"`
	Status         int8   `json:"status"`
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
}
