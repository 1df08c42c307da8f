// Package repository 提供数据访问层的具体实现
// 本文件实现 UnlockRepository 接口，处理联系方式解锁相关的数据库操作
package repository

import (
	"homeswap_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// unlockRepository UnlockRepository 接口的实现
type unlockRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewUnlockRepository 创建 UnlockRepository 实例
func NewUnlockRepository(db *gorm.DB) UnlockRepository {
	return &unlockRepository{db: db}
}

// FindByChainId 查找链上的解锁请求
// 一条链至多一个解锁请求
func (r *unlockRepository) FindByChainId(chainId string) (*model.ContactUnlock, error) {
	var unlock model.ContactUnlock
	if err := r.db.First(&unlock, "chain_id = ?", chainId).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询解锁请求 chain=%s", chainId)
	}
	return &unlock, nil
}

// Create 创建解锁请求
func (r *unlockRepository) Create(unlock *model.ContactUnlock) error {
	if err := r.db.Create(unlock).Error; err != nil {
		return wrapDBError(err, "创建解锁请求")
	}
	return nil
}

// UpsertApproval 写入或更新批准记录
// (解锁请求, 批准人) 唯一，重复批准落在同一行，天然幂等
func (r *unlockRepository) UpsertApproval(approval *model.ContactUnlockApproval) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contact_unlock_id"}, {Name: "approver_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"approved", "updated_at"}),
	}).Create(approval).Error; err != nil {
		return wrapDBError(err, "写入解锁批准")
	}
	return nil
}

// FindApprovals 查找解锁请求的全部批准记录
func (r *unlockRepository) FindApprovals(unlockId string) ([]model.ContactUnlockApproval, error) {
	var approvals []model.ContactUnlockApproval
	if err := r.db.Where("contact_unlock_id = ?", unlockId).
		Find(&approvals).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询解锁批准 unlock=%s", unlockId)
	}
	return approvals, nil
}

// CountApproved 统计已批准人数
func (r *unlockRepository) CountApproved(unlockId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.ContactUnlockApproval{}).
		Where("contact_unlock_id = ? AND approved = ?", unlockId, true).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计解锁批准 unlock=%s", unlockId)
	}
	return count, nil
}
