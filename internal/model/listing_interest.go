// Package model 定义数据库实体模型
// 本文件定义房源意向请求模型（一对多协商路径，独立于自动链匹配）
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// ListingInterest 房源意向请求
// 对应数据库 listing_interest 表
// (目标房源, 请求方房源) 唯一：重复请求更新原记录而非新建
type ListingInterest struct {
	gorm.Model

	// Uuid 意向请求唯一标识
	// 格式：I + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:意向唯一id"`

	// ListingId 目标房源 UUID
	ListingId string `gorm:"column:listing_id;uniqueIndex:idx_target_requester;type:char(20);not null;comment:目标房源ID"`

	// RequesterListingId 请求方房源 UUID
	RequesterListingId string `gorm:"column:requester_listing_id;uniqueIndex:idx_target_requester;type:char(20);not null;comment:请求方房源ID"`

	// RequesterUserId 请求方用户 UUID
	RequesterUserId string `gorm:"column:requester_user_id;index;type:char(20);not null;comment:请求方用户ID"`

	// Status 意向状态
	// REQUESTED / CONTACT_APPROVED / CONFIRMED_RENTER / DECLINED / EXPIRED / RELEASED
	Status string `gorm:"column:status;index;type:varchar(20);not null;comment:状态"`

	// ExpiresAt 请求过期时间（进行中状态才有）
	ExpiresAt sql.NullTime `gorm:"column:expires_at;index;type:datetime;comment:过期时间"`

	// RespondedAt 房源方响应时间
	RespondedAt sql.NullTime `gorm:"column:responded_at;type:datetime;comment:响应时间"`

	// ReleasedAt 释放/过期关闭时间
	ReleasedAt sql.NullTime `gorm:"column:released_at;type:datetime;comment:释放时间"`

	// ConfirmedAt 成交确认时间
	ConfirmedAt sql.NullTime `gorm:"column:confirmed_at;type:datetime;comment:成交确认时间"`
}

// TableName 指定表名
func (ListingInterest) TableName() string {
	return "listing_interest"
}
