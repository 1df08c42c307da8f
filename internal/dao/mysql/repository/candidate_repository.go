// Package repository 提供数据访问层的具体实现
// 本文件实现 CandidateRepository 接口，处理匹配候选（打分边）的数据库操作
package repository

import (
	"homeswap_server/internal/model"

	"gorm.io/gorm"
)

// candidateRepository CandidateRepository 接口的实现
type candidateRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewCandidateRepository 创建 CandidateRepository 实例
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// ReplaceForListing 重建某房源的全部出边
// 每次跑匹配都是先删后插，保证边集与最新打分一致
func (r *candidateRepository) ReplaceForListing(fromListingId string, rows []model.MatchCandidate) error {
	if err := r.db.Where("from_listing_id = ?", fromListingId).
		Delete(&model.MatchCandidate{}).Error; err != nil {
		return wrapDBErrorf(err, "清空房源出边 from=%s", fromListingId)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.Create(&rows).Error; err != nil {
		return wrapDBErrorf(err, "写入房源出边 from=%s", fromListingId)
	}
	return nil
}

// FindFrom 查找某房源的全部出边，总分高的在前
func (r *candidateRepository) FindFrom(fromListingId string) ([]model.MatchCandidate, error) {
	var rows []model.MatchCandidate
	if err := r.db.Where("from_listing_id = ?", fromListingId).
		Order("total_score DESC").Find(&rows).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房源出边 from=%s", fromListingId)
	}
	return rows, nil
}

// FindEdge 查找指定方向的一条边
func (r *candidateRepository) FindEdge(fromListingId, toListingId string) (*model.MatchCandidate, error) {
	var row model.MatchCandidate
	if err := r.db.Where("from_listing_id = ? AND to_listing_id = ?",
		fromListingId, toListingId).First(&row).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询边 from=%s to=%s", fromListingId, toListingId)
	}
	return &row, nil
}

// DeleteByListing 删除某房源相关的全部边（出边与入边）
// 房源过期或成交后调用
func (r *candidateRepository) DeleteByListing(listingId string) error {
	if err := r.db.Where("from_listing_id = ? OR to_listing_id = ?",
		listingId, listingId).Delete(&model.MatchCandidate{}).Error; err != nil {
		return wrapDBErrorf(err, "删除房源相关边 listing=%s", listingId)
	}
	return nil
}
