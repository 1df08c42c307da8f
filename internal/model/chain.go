// Package model 定义数据库实体模型
// 本文件定义交换链模型
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// SwapChain 交换链模型
// 对应数据库 swap_chain 表
// 一条链是 2（直接互换）或 3-4（环形）个房源组成的闭环提案
type SwapChain struct {
	gorm.Model

	// Uuid 链唯一标识
	// 格式：C + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:链唯一id"`

	// CycleSize 环大小（成员数）
	CycleSize int `gorm:"column:cycle_size;not null;comment:环大小"`

	// AvgScore 环上各边排名分的平均值
	AvgScore int `gorm:"column:avg_score;not null;comment:平均分"`

	// Status 链状态
	// PENDING / LOCKED / BROKEN
	Status string `gorm:"column:status;index;type:varchar(10);not null;comment:状态"`

	// Type 链类型
	// DIRECT / CIRCULAR
	Type string `gorm:"column:type;type:varchar(10);not null;comment:类型"`

	// CycleHash 规范化环哈希：成员房源 ID 排序后连接
	// 唯一索引是去重的权威保障：同一组房源至多一条链，与遍历方向无关
	CycleHash string `gorm:"column:cycle_hash;uniqueIndex;type:varchar(120);not null;comment:规范化环哈希"`

	// AcceptBy 确认截止时间，锁定后清空
	AcceptBy sql.NullTime `gorm:"column:accept_by;index;type:datetime;comment:确认截止时间"`

	// BrokenReason 断裂原因（BROKEN 后有效）
	BrokenReason string `gorm:"column:broken_reason;type:varchar(20);comment:断裂原因"`

	// BrokenActor 断裂操作者类型：USER / ADMIN / SYSTEM
	BrokenActor string `gorm:"column:broken_actor;type:varchar(10);comment:断裂操作者类型"`

	// BrokenByUserId 断裂操作者用户 UUID（系统触发时为空）
	BrokenByUserId string `gorm:"column:broken_by_user_id;type:char(20);comment:断裂操作者ID"`

	// BrokenAt 断裂时间
	BrokenAt sql.NullTime `gorm:"column:broken_at;type:datetime;comment:断裂时间"`
}

// TableName 指定表名
func (SwapChain) TableName() string {
	return "swap_chain"
}
