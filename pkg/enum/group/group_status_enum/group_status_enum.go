package group_status_enum

// 群组状态，0.正常，1.禁用，2.解散
const (
	NORMAL    int8 = 0
	DISABLED  int8 = 1
	DISMISSED int8 = 2
)
