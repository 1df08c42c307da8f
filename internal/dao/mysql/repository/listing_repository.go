// Package repository 提供数据访问层的具体实现
// 本文件实现 ListingRepository 接口，处理交换房源相关的数据库操作
package repository

import (
	"time"

	"homeswap_server/internal/model"
	"homeswap_server/pkg/enum/listing/listing_status_enum"

	"gorm.io/gorm"
)

// listingRepository ListingRepository 接口的实现
type listingRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewListingRepository 创建 ListingRepository 实例
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// FindByUuid 根据 UUID 查找房源
func (r *listingRepository) FindByUuid(uuid string) (*model.SwapListing, error) {
	var listing model.SwapListing
	if err := r.db.First(&listing, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房源 uuid=%s", uuid)
	}
	return &listing, nil
}

// FindByUuids 批量根据 UUID 查找房源
func (r *listingRepository) FindByUuids(uuids []string) ([]model.SwapListing, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var listings []model.SwapListing
	if err := r.db.Where("uuid IN ?", uuids).Find(&listings).Error; err != nil {
		return nil, wrapDBError(err, "批量查询房源")
	}
	return listings, nil
}

// FindByUserId 查找用户的全部房源
func (r *listingRepository) FindByUserId(userId string) ([]model.SwapListing, error) {
	var listings []model.SwapListing
	if err := r.db.Where("user_id = ?", userId).Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户房源 user_id=%s", userId)
	}
	return listings, nil
}

// FindActiveByUserId 查找用户的在挂房源
func (r *listingRepository) FindActiveByUserId(userId string) ([]model.SwapListing, error) {
	var listings []model.SwapListing
	if err := r.db.Where("user_id = ? AND status = ?", userId, listing_status_enum.ACTIVE).
		Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户在挂房源 user_id=%s", userId)
	}
	return listings, nil
}

// FindAllActive 查找所有在挂房源
// 匹配引擎构图时全量加载
func (r *listingRepository) FindAllActive() ([]model.SwapListing, error) {
	var listings []model.SwapListing
	if err := r.db.Where("status = ?", listing_status_enum.ACTIVE).
		Find(&listings).Error; err != nil {
		return nil, wrapDBError(err, "查询在挂房源")
	}
	return listings, nil
}

// FindExpired 查找已过截止时间仍在挂的房源，最旧优先
func (r *listingRepository) FindExpired(before time.Time, limit int) ([]model.SwapListing, error) {
	var listings []model.SwapListing
	if err := r.db.Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?",
		listing_status_enum.ACTIVE, before).
		Order("expires_at ASC").Limit(limit).Find(&listings).Error; err != nil {
		return nil, wrapDBError(err, "查询过期房源")
	}
	return listings, nil
}

// Create 创建房源
func (r *listingRepository) Create(listing *model.SwapListing) error {
	if err := r.db.Create(listing).Error; err != nil {
		return wrapDBError(err, "创建房源")
	}
	return nil
}

// Update 更新房源（全字段更新）
func (r *listingRepository) Update(listing *model.SwapListing) error {
	if err := r.db.Save(listing).Error; err != nil {
		return wrapDBError(err, "更新房源")
	}
	return nil
}

// UpdateStatusIf 条件更新状态
// 影响行数为 0 表示状态已被并发修改，调用方据此决定是否重试或放弃
func (r *listingRepository) UpdateStatusIf(uuid string, from string, to string) (int64, error) {
	tx := r.db.Model(&model.SwapListing{}).
		Where("uuid = ? AND status = ?", uuid, from).
		Update("status", to)
	if tx.Error != nil {
		return 0, wrapDBErrorf(tx.Error, "更新房源状态 uuid=%s", uuid)
	}
	return tx.RowsAffected, nil
}

// Renew 续期房源：更新过期时间并回到在挂状态
// 校验归属，避免越权续期
func (r *listingRepository) Renew(uuid string, userId string, expiresAt time.Time) (int64, error) {
	tx := r.db.Model(&model.SwapListing{}).
		Where("uuid = ? AND user_id = ? AND status IN ?",
			uuid, userId, []string{listing_status_enum.ACTIVE, listing_status_enum.EXPIRED}).
		Updates(map[string]any{
			"status":     listing_status_enum.ACTIVE,
			"expires_at": expiresAt,
		})
	if tx.Error != nil {
		return 0, wrapDBErrorf(tx.Error, "续期房源 uuid=%s", uuid)
	}
	return tx.RowsAffected, nil
}

// MarkMatched 批量标记房源成交
func (r *listingRepository) MarkMatched(uuids []string, interestId string, at time.Time) error {
	if len(uuids) == 0 {
		return nil
	}
	if err := r.db.Model(&model.SwapListing{}).Where("uuid IN ?", uuids).
		Updates(map[string]any{
			"status":              listing_status_enum.MATCHED,
			"matched_interest_id": interestId,
			"matched_at":          at,
		}).Error; err != nil {
		return wrapDBError(err, "标记房源成交")
	}
	return nil
}
