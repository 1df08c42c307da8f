// Package repository 提供数据访问层的具体实现
// 本文件实现 UserRepository 接口，处理用户相关的数据库操作
package repository

import (
	"time"

	"homeswap_server/internal/model"

	"gorm.io/gorm"
)

// userRepository UserRepository 接口的实现
type userRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 根据 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByEmail 根据邮箱查找用户
// 邮箱是登录标识，电话号码加密落库不可查询
func (r *userRepository) FindByEmail(email string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 email=%s", email)
	}
	return &user, nil
}

// FindByUuids 批量根据 UUID 查找用户
func (r *userRepository) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var users []model.UserInfo
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户")
	}
	return users, nil
}

// Create 创建新用户
func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

// UpdateLastLogin 记录最近登录时间
func (r *userRepository) UpdateLastLogin(uuid string, at time.Time) error {
	if err := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).
		Update("last_login_at", at).Error; err != nil {
		return wrapDBErrorf(err, "更新登录时间 uuid=%s", uuid)
	}
	return nil
}

// AddPenaltyPoints 累加信誉扣分
// 扣分只增不减，由排名权重决定是否影响推荐
func (r *userRepository) AddPenaltyPoints(uuid string, delta int) error {
	if delta <= 0 {
		return nil
	}
	if err := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).
		Update("penalty_points", gorm.Expr("penalty_points + ?", delta)).Error; err != nil {
		return wrapDBErrorf(err, "累加信誉扣分 uuid=%s", uuid)
	}
	return nil
}
