package join_status_enum

// 入群状态机：NonMember -> PENDING -> APPROVED -> (REJECTED | BLOCKED)
// 公开群直接 NonMember -> APPROVED
const (
	PENDING  int8 = 0
	APPROVED int8 = 1
	REJECTED int8 = 2
	BLOCKED  int8 = 3
)

// Valid 检查状态取值是否合法
func Valid(s int8) bool {
	return s >= PENDING && s <= BLOCKED
}
