// Package model 定义数据库实体模型
// 本文件定义联系方式解锁模型
// 链 LOCKED 后任一成员可发起解锁，全员批准后电话号码才对成员可见
package model

import (
	"gorm.io/gorm"
)

// ContactUnlock 联系方式解锁请求
// 对应数据库 contact_unlock 表
type ContactUnlock struct {
	gorm.Model

	// Uuid 解锁请求唯一标识
	// 格式：K + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:解锁请求唯一id"`

	// ChainId 所属链 UUID
	ChainId string `gorm:"column:chain_id;index;type:char(20);not null;comment:所属链ID"`

	// RequesterUserId 发起者用户 UUID（发起即自动批准）
	RequesterUserId string `gorm:"column:requester_user_id;type:char(20);not null;comment:发起者ID"`
}

// TableName 指定表名
func (ContactUnlock) TableName() string {
	return "contact_unlock"
}

// ContactUnlockApproval 解锁批准记录
// 对应数据库 contact_unlock_approval 表
// (解锁请求, 批准人) 唯一，重复批准为幂等
type ContactUnlockApproval struct {
	gorm.Model

	// ContactUnlockId 解锁请求 UUID
	ContactUnlockId string `gorm:"column:contact_unlock_id;uniqueIndex:idx_unlock_approver;type:char(20);not null;comment:解锁请求ID"`

	// ApproverUserId 批准人用户 UUID
	ApproverUserId string `gorm:"column:approver_user_id;uniqueIndex:idx_unlock_approver;type:char(20);not null;comment:批准人ID"`

	// Approved 是否批准
	Approved bool `gorm:"column:approved;not null;default:false;comment:是否批准"`
}

// TableName 指定表名
func (ContactUnlockApproval) TableName() string {
	return "contact_unlock_approval"
}
