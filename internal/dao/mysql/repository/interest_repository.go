// Package repository 提供数据访问层的具体实现
// 本文件实现 InterestRepository 接口，处理房源意向请求相关的数据库操作
package repository

import (
	"time"

	"homeswap_server/internal/model"
	"homeswap_server/pkg/enum/interest/interest_status_enum"

	"gorm.io/gorm"
)

// interestRepository InterestRepository 接口的实现
type interestRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewInterestRepository 创建 InterestRepository 实例
func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

// FindByUuid 根据 UUID 查找意向
func (r *interestRepository) FindByUuid(uuid string) (*model.ListingInterest, error) {
	var interest model.ListingInterest
	if err := r.db.First(&interest, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询意向 uuid=%s", uuid)
	}
	return &interest, nil
}

// FindByPair 根据 (目标房源, 请求方房源) 查找意向
// 这对组合上有唯一索引，重复请求复用原记录
func (r *interestRepository) FindByPair(listingId, requesterListingId string) (*model.ListingInterest, error) {
	var interest model.ListingInterest
	if err := r.db.Where("listing_id = ? AND requester_listing_id = ?",
		listingId, requesterListingId).First(&interest).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询意向 listing=%s requester=%s", listingId, requesterListingId)
	}
	return &interest, nil
}

// FindByTargetListings 查找指向这些房源的意向（收到的请求），新的在前
func (r *interestRepository) FindByTargetListings(listingIds []string) ([]model.ListingInterest, error) {
	if len(listingIds) == 0 {
		return nil, nil
	}
	var interests []model.ListingInterest
	if err := r.db.Where("listing_id IN ?", listingIds).Order("created_at DESC").
		Find(&interests).Error; err != nil {
		return nil, wrapDBError(err, "查询收到的意向")
	}
	return interests, nil
}

// FindByRequesterUserId 查找用户发出的意向，新的在前
func (r *interestRepository) FindByRequesterUserId(userId string) ([]model.ListingInterest, error) {
	var interests []model.ListingInterest
	if err := r.db.Where("requester_user_id = ?", userId).Order("created_at DESC").
		Find(&interests).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询发出的意向 user=%s", userId)
	}
	return interests, nil
}

// FindOpenByListing 查找目标房源上仍在进行中的意向
// 成交时用于释放其余请求
func (r *interestRepository) FindOpenByListing(listingId string) ([]model.ListingInterest, error) {
	var interests []model.ListingInterest
	if err := r.db.Where("listing_id = ? AND status IN ?",
		listingId, interest_status_enum.Open()).Find(&interests).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询进行中意向 listing=%s", listingId)
	}
	return interests, nil
}

// FindOpenTouching 查找与房源相关（作为目标或请求方）的进行中意向
// 成交时这两侧的其他请求都要被释放
func (r *interestRepository) FindOpenTouching(listingId string) ([]model.ListingInterest, error) {
	var interests []model.ListingInterest
	if err := r.db.Where("(listing_id = ? OR requester_listing_id = ?) AND status IN ?",
		listingId, listingId, interest_status_enum.Open()).Find(&interests).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询相关进行中意向 listing=%s", listingId)
	}
	return interests, nil
}

// FindExpired 查找已过期仍在进行中的意向，最旧优先
func (r *interestRepository) FindExpired(before time.Time, limit int) ([]model.ListingInterest, error) {
	var interests []model.ListingInterest
	if err := r.db.Where("status IN ? AND expires_at IS NOT NULL AND expires_at < ?",
		interest_status_enum.Open(), before).
		Order("expires_at ASC").Limit(limit).Find(&interests).Error; err != nil {
		return nil, wrapDBError(err, "查询过期意向")
	}
	return interests, nil
}

// Create 创建意向
func (r *interestRepository) Create(interest *model.ListingInterest) error {
	if err := r.db.Create(interest).Error; err != nil {
		if IsDuplicateKey(err) {
			return err
		}
		return wrapDBError(err, "创建意向")
	}
	return nil
}

// Update 更新意向（全字段更新）
func (r *interestRepository) Update(interest *model.ListingInterest) error {
	if err := r.db.Save(interest).Error; err != nil {
		return wrapDBError(err, "更新意向")
	}
	return nil
}

// Transition 条件状态流转并打时间戳
// 目标状态决定写哪些时间戳列：关闭类状态同时补齐响应时间，
// 成交和释放还要清掉过期时间，关闭的记录不该再被过期清扫扫到
// 影响行数为 0 表示状态已被并发修改
func (r *interestRepository) Transition(uuid string, from []string, to string, at time.Time) (int64, error) {
	updates := map[string]any{"status": to}
	switch to {
	case interest_status_enum.CONTACT_APPROVED, interest_status_enum.DECLINED:
		updates["responded_at"] = at
	case interest_status_enum.CONFIRMED_RENTER:
		updates["responded_at"] = at
		updates["confirmed_at"] = at
		updates["released_at"] = nil
		updates["expires_at"] = nil
	case interest_status_enum.EXPIRED:
		updates["responded_at"] = at
		updates["released_at"] = at
	case interest_status_enum.RELEASED:
		updates["responded_at"] = at
		updates["released_at"] = at
		updates["expires_at"] = nil
	}

	tx := r.db.Model(&model.ListingInterest{}).
		Where("uuid = ? AND status IN ?", uuid, from).
		Updates(updates)
	if tx.Error != nil {
		return 0, wrapDBErrorf(tx.Error, "流转意向状态 uuid=%s to=%s", uuid, to)
	}
	return tx.RowsAffected, nil
}
