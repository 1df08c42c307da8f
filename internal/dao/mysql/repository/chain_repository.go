// Package repository 提供数据访问层的具体实现
// 本文件实现 ChainRepository 接口，处理交换链相关的数据库操作
package repository

import (
	"time"

	"homeswap_server/internal/model"
	"homeswap_server/pkg/enum/chain/chain_status_enum"

	"gorm.io/gorm"
)

// chainRepository ChainRepository 接口的实现
type chainRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewChainRepository 创建 ChainRepository 实例
func NewChainRepository(db *gorm.DB) ChainRepository {
	return &chainRepository{db: db}
}

// FindByUuid 根据 UUID 查找链
func (r *chainRepository) FindByUuid(uuid string) (*model.SwapChain, error) {
	var chain model.SwapChain
	if err := r.db.First(&chain, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询链 uuid=%s", uuid)
	}
	return &chain, nil
}

// FindByUuids 批量根据 UUID 查找链，新的在前
func (r *chainRepository) FindByUuids(uuids []string) ([]model.SwapChain, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var chains []model.SwapChain
	if err := r.db.Where("uuid IN ?", uuids).Order("created_at DESC").
		Find(&chains).Error; err != nil {
		return nil, wrapDBError(err, "批量查询链")
	}
	return chains, nil
}

// FindByHash 根据规范化环哈希查找链
// 哈希列上有唯一索引，同一组房源至多一条链
func (r *chainRepository) FindByHash(cycleHash string) (*model.SwapChain, error) {
	var chain model.SwapChain
	if err := r.db.First(&chain, "cycle_hash = ?", cycleHash).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询链 hash=%s", cycleHash)
	}
	return &chain, nil
}

// FindExpired 查找已过确认截止时间的待确认链，最旧优先
func (r *chainRepository) FindExpired(before time.Time, limit int) ([]model.SwapChain, error) {
	var chains []model.SwapChain
	if err := r.db.Where("status = ? AND accept_by IS NOT NULL AND accept_by < ?",
		chain_status_enum.PENDING, before).
		Order("accept_by ASC").Limit(limit).Find(&chains).Error; err != nil {
		return nil, wrapDBError(err, "查询过期链")
	}
	return chains, nil
}

// Create 创建链
// cycle_hash 唯一索引冲突由调用方通过 IsDuplicateKey 识别为并发重复
func (r *chainRepository) Create(chain *model.SwapChain) error {
	if err := r.db.Create(chain).Error; err != nil {
		if IsDuplicateKey(err) {
			return err
		}
		return wrapDBError(err, "创建链")
	}
	return nil
}

// Lock 将待确认链置为锁定并清空截止时间
// 只有 PENDING 状态可锁定，影响行数为 0 表示状态已变
func (r *chainRepository) Lock(uuid string) (int64, error) {
	tx := r.db.Model(&model.SwapChain{}).
		Where("uuid = ? AND status = ?", uuid, chain_status_enum.PENDING).
		Updates(map[string]any{
			"status":    chain_status_enum.LOCKED,
			"accept_by": nil,
		})
	if tx.Error != nil {
		return 0, wrapDBErrorf(tx.Error, "锁定链 uuid=%s", uuid)
	}
	return tx.RowsAffected, nil
}

// MarkBroken 将链从允许的状态置为断裂
// allowedFrom 控制谁能打断什么：系统过期只断 PENDING，管理员可断 PENDING 与 LOCKED
func (r *chainRepository) MarkBroken(uuid string, reason, actor, byUserId string, at time.Time, allowedFrom []string) (int64, error) {
	tx := r.db.Model(&model.SwapChain{}).
		Where("uuid = ? AND status IN ?", uuid, allowedFrom).
		Updates(map[string]any{
			"status":            chain_status_enum.BROKEN,
			"broken_reason":     reason,
			"broken_actor":      actor,
			"broken_by_user_id": byUserId,
			"broken_at":         at,
			"accept_by":         nil,
		})
	if tx.Error != nil {
		return 0, wrapDBErrorf(tx.Error, "断开链 uuid=%s", uuid)
	}
	return tx.RowsAffected, nil
}
