// Package notification_type_enum 定义通知类型枚举
package notification_type_enum

const (
	CHAIN_PENDING      = "CHAIN_PENDING"      // 新链创建，等待确认
	CHAIN_LOCKED       = "CHAIN_LOCKED"       // 链已全员确认锁定
	CHAIN_BROKEN       = "CHAIN_BROKEN"       // 链已断裂
	MATCH_RERUN        = "MATCH_RERUN"        // 管理员重跑匹配
	INTEREST_REQUESTED = "INTEREST_REQUESTED" // 收到/发出意向请求
	INTEREST_APPROVED  = "INTEREST_APPROVED"  // 意向已批准联系
	INTEREST_DECLINED  = "INTEREST_DECLINED"  // 意向已拒绝
	INTEREST_EXPIRED   = "INTEREST_EXPIRED"   // 意向已过期
	RENTER_CONFIRMED   = "RENTER_CONFIRMED"   // 已确认成交
	REQUEST_RELEASED   = "REQUEST_RELEASED"   // 意向因他人成交被释放
)
