package role_enum

// 群成员角色，1.普通成员，2.管理员，3.群主
const (
	MEMBER int8 = 1
	ADMIN  int8 = 2
	OWNER  int8 = 3
)
