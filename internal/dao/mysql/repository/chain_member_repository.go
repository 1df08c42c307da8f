// Package repository 提供数据访问层的具体实现
// 本文件实现 ChainMemberRepository 接口，处理交换链成员相关的数据库操作
package repository

import (
	"homeswap_server/internal/model"

	"gorm.io/gorm"
)

// chainMemberRepository ChainMemberRepository 接口的实现
type chainMemberRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewChainMemberRepository 创建 ChainMemberRepository 实例
func NewChainMemberRepository(db *gorm.DB) ChainMemberRepository {
	return &chainMemberRepository{db: db}
}

// CreateBatch 批量创建成员
func (r *chainMemberRepository) CreateBatch(members []model.SwapChainMember) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.db.Create(&members).Error; err != nil {
		return wrapDBError(err, "创建链成员")
	}
	return nil
}

// FindByChainId 查找链的全部成员，按环中位置排序
func (r *chainMemberRepository) FindByChainId(chainId string) ([]model.SwapChainMember, error) {
	var members []model.SwapChainMember
	if err := r.db.Where("chain_id = ?", chainId).Order("position ASC").
		Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询链成员 chain=%s", chainId)
	}
	return members, nil
}

// FindByChainIds 批量查找多条链的成员
func (r *chainMemberRepository) FindByChainIds(chainIds []string) ([]model.SwapChainMember, error) {
	if len(chainIds) == 0 {
		return nil, nil
	}
	var members []model.SwapChainMember
	if err := r.db.Where("chain_id IN ?", chainIds).Order("position ASC").
		Find(&members).Error; err != nil {
		return nil, wrapDBError(err, "批量查询链成员")
	}
	return members, nil
}

// FindChainIdsByUserId 查找用户参与的链 ID
func (r *chainMemberRepository) FindChainIdsByUserId(userId string) ([]string, error) {
	var chainIds []string
	if err := r.db.Model(&model.SwapChainMember{}).Where("user_id = ?", userId).
		Distinct().Pluck("chain_id", &chainIds).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户所在链 user=%s", userId)
	}
	return chainIds, nil
}

// FindChainIdsByListingId 查找房源参与的链 ID
func (r *chainMemberRepository) FindChainIdsByListingId(listingId string) ([]string, error) {
	var chainIds []string
	if err := r.db.Model(&model.SwapChainMember{}).Where("listing_id = ?", listingId).
		Distinct().Pluck("chain_id", &chainIds).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房源所在链 listing=%s", listingId)
	}
	return chainIds, nil
}

// FindBusyListingIds 查找处于指定状态链中的房源 ID
// 构图时用于排除已在进行中链里的房源
func (r *chainMemberRepository) FindBusyListingIds(chainStatuses []string) ([]string, error) {
	var listingIds []string
	if err := r.db.Model(&model.SwapChainMember{}).
		Joins("JOIN swap_chain ON swap_chain.uuid = swap_chain_member.chain_id").
		Where("swap_chain.status IN ?", chainStatuses).
		Distinct().Pluck("swap_chain_member.listing_id", &listingIds).Error; err != nil {
		return nil, wrapDBError(err, "查询占用中房源")
	}
	return listingIds, nil
}

// Accept 标记成员已确认
// 重复确认影响行数为 0，调用方按幂等处理
func (r *chainMemberRepository) Accept(chainId, userId string) (int64, error) {
	tx := r.db.Model(&model.SwapChainMember{}).
		Where("chain_id = ? AND user_id = ? AND has_accepted = ?", chainId, userId, false).
		Update("has_accepted", true)
	if tx.Error != nil {
		return 0, wrapDBErrorf(tx.Error, "确认链成员 chain=%s user=%s", chainId, userId)
	}
	return tx.RowsAffected, nil
}

// CountUnaccepted 统计链中未确认成员数
func (r *chainMemberRepository) CountUnaccepted(chainId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.SwapChainMember{}).
		Where("chain_id = ? AND has_accepted = ?", chainId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未确认成员 chain=%s", chainId)
	}
	return count, nil
}
