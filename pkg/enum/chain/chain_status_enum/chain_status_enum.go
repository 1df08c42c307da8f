// Package chain_status_enum 定义交换链状态枚举
package chain_status_enum

const (
	PENDING = "PENDING" // 等待全员确认
	LOCKED  = "LOCKED"  // 全员已确认，锁定
	BROKEN  = "BROKEN"  // 已断裂（终态）
)
