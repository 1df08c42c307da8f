// Package actor_type_enum 定义状态变更操作者类型枚举
package actor_type_enum

const (
	USER   = "USER"   // 普通用户操作
	ADMIN  = "ADMIN"  // 管理员操作
	SYSTEM = "SYSTEM" // 系统自动操作（过期清扫等）
)
