// Package model 定义数据库实体模型
// 本文件定义匹配候选边模型，即兼容图中一条有向边的打分快照
package model

import (
	"gorm.io/gorm"
)

// MatchCandidate 匹配候选边模型
// 对应数据库 match_candidate 表
// 每次匹配运行重算并 Upsert，仅作检查用途，不是权威状态
type MatchCandidate struct {
	gorm.Model

	// FromListingId 边起点房源 UUID
	FromListingId string `gorm:"column:from_listing_id;uniqueIndex:idx_from_to;type:char(20);not null;comment:起点房源ID"`

	// ToListingId 边终点房源 UUID
	ToListingId string `gorm:"column:to_listing_id;uniqueIndex:idx_from_to;type:char(20);not null;comment:终点房源ID"`

	// 五个维度的子分
	CityScore     int `gorm:"column:city_score;not null;comment:城市分"`
	TypeScore     int `gorm:"column:type_score;not null;comment:户型分"`
	BudgetScore   int `gorm:"column:budget_score;not null;comment:预算分"`
	TimelineScore int `gorm:"column:timeline_score;not null;comment:时间线分"`
	FeatureScore  int `gorm:"column:feature_score;not null;comment:特性分"`

	// TotalScore 总分（五项之和，上限 100）
	TotalScore int `gorm:"column:total_score;not null;comment:总分"`
}

// TableName 指定表名
func (MatchCandidate) TableName() string {
	return "match_candidate"
}
