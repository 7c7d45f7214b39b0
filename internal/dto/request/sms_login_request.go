package request

// SmsLoginRequest 短信验证码登录请求
// 使用位置:
//   - internal/handler/user_handler.go: SmsLogin
//   - internal/service/user/service.go: SmsLogin
type SmsLoginRequest struct {
	Telephone string `json:"telephone" binding:"required"`
	SmsCode   string `json:"sms_code" binding:"required,len=6"`
}
