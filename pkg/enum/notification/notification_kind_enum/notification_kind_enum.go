package notification_kind_enum

// 通知类型，0.入群申请（发给群主），1.申请结果（发给申请人），2.系统通知
const (
	JOIN_REQUEST int8 = 0
	JOIN_RESULT  int8 = 1
	SYSTEM       int8 = 2
)
