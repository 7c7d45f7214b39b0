package visibility_enum

// 群组可见性，0.公开（直接加入），1.私有（需群主审核）
const (
	PUBLIC  int8 = 0
	PRIVATE int8 = 1
)

// Valid 检查可见性取值是否合法
func Valid(v int8) bool {
	return v == PUBLIC || v == PRIVATE
}
