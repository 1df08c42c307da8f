// Package chain_type_enum 定义交换链类型枚举
package chain_type_enum

const (
	DIRECT   = "DIRECT"   // 两人直接互换
	CIRCULAR = "CIRCULAR" // 3-4 人环形交换
)
