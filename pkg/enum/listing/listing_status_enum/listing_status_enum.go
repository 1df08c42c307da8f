// Package listing_status_enum 定义房源状态枚举
package listing_status_enum

const (
	ACTIVE  = "ACTIVE"  // 挂牌中，参与自动匹配
	MATCHED = "MATCHED" // 已通过意向流程成交
	EXPIRED = "EXPIRED" // 已过期，可续期恢复
)
