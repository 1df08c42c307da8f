// Package chain_break_reason_enum 定义交换链断裂原因枚举
package chain_break_reason_enum

const (
	DECLINED    = "DECLINED"    // 成员拒绝
	ADMIN_FORCE = "ADMIN_FORCE" // 管理员强制断开
	EXPIRED     = "EXPIRED"     // 超过确认截止时间
	CONFLICT    = "CONFLICT"    // 成员房源在其他流程中被占用
	NO_SHOW     = "NO_SHOW"     // 成员爽约
	UNKNOWN     = "UNKNOWN"     // 未知原因
)

// Valid 检查断裂原因是否合法
func Valid(reason string) bool {
	switch reason {
	case DECLINED, ADMIN_FORCE, EXPIRED, CONFLICT, NO_SHOW, UNKNOWN:
		return true
	}
	return false
}
