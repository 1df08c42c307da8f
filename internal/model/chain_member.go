// Package model 定义数据库实体模型
// 本文件定义交换链成员模型
package model

import (
	"gorm.io/gorm"
)

// SwapChainMember 交换链成员模型
// 对应数据库 swap_chain_member 表
// 随链一起创建，之后仅翻转确认标志
type SwapChainMember struct {
	gorm.Model

	// ChainId 所属链 UUID
	ChainId string `gorm:"column:chain_id;index;type:char(20);not null;comment:所属链ID"`

	// ListingId 成员房源 UUID
	ListingId string `gorm:"column:listing_id;index;type:char(20);not null;comment:成员房源ID"`

	// UserId 成员用户 UUID
	UserId string `gorm:"column:user_id;index;type:char(20);not null;comment:成员用户ID"`

	// Position 在环中的位置（0 起）
	Position int `gorm:"column:position;not null;comment:环中位置"`

	// HasAccepted 是否已确认
	HasAccepted bool `gorm:"column:has_accepted;not null;default:false;comment:是否已确认"`
}

// TableName 指定表名
func (SwapChainMember) TableName() string {
	return "swap_chain_member"
}
