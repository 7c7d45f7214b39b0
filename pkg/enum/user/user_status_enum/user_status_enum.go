package user_status_enum

// 账号状态，0.正常，1.禁用
const (
	NORMAL   int8 = 0
	DISABLED int8 = 1
)
