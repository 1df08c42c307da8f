// Package model 定义数据库实体模型
// 本文件定义换房房源模型
package model

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// SwapListing 换房房源模型
// 对应数据库 swap_listing 表
// 一条房源同时描述"想要什么"（desired_*）和"提供什么"（current_*）
type SwapListing struct {
	gorm.Model

	// Uuid 房源唯一标识
	// 格式：L + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:房源唯一id"`

	// UserId 房源所属用户 UUID
	UserId string `gorm:"column:user_id;index;type:char(20);not null;comment:所属用户ID"`

	// DesiredCity 期望城市
	DesiredCity string `gorm:"column:desired_city;type:varchar(50);not null;comment:期望城市"`

	// DesiredType 期望户型
	DesiredType string `gorm:"column:desired_type;type:varchar(50);not null;comment:期望户型"`

	// MaxBudget 预算上限（月租）
	MaxBudget int `gorm:"column:max_budget;not null;comment:预算上限"`

	// Timeline 期望时间线描述（自由文本）
	Timeline string `gorm:"column:timeline;type:varchar(50);comment:期望时间线"`

	// CurrentCity 现居城市
	CurrentCity string `gorm:"column:current_city;type:varchar(50);not null;comment:现居城市"`

	// CurrentType 现居户型
	CurrentType string `gorm:"column:current_type;type:varchar(50);not null;comment:现居户型"`

	// CurrentRent 现居月租
	CurrentRent int `gorm:"column:current_rent;not null;comment:现居月租"`

	// AvailableOn 可交房日期
	AvailableOn time.Time `gorm:"column:available_on;type:datetime;not null;comment:可交房日期"`

	// Features 房源特性列表（JSON 序列化）
	Features []string `gorm:"column:features;serializer:json;type:varchar(500);comment:房源特性"`

	// Status 房源状态
	// ACTIVE / MATCHED / EXPIRED，仅 ACTIVE 参与匹配图构建
	Status string `gorm:"column:status;index;type:varchar(10);not null;comment:状态"`

	// ExpiresAt 挂牌过期时间
	ExpiresAt time.Time `gorm:"column:expires_at;index;type:datetime;not null;comment:挂牌过期时间"`

	// MatchedInterestId 成交时对应的意向请求 UUID（目标方才有）
	MatchedInterestId string `gorm:"column:matched_interest_id;type:char(20);comment:成交意向ID"`

	// MatchedAt 成交时间
	MatchedAt sql.NullTime `gorm:"column:matched_at;type:datetime;comment:成交时间"`
}

// TableName 指定表名
func (SwapListing) TableName() string {
	return "swap_listing"
}
