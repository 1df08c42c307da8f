// Package repository 提供数据访问层的具体实现
// 本文件实现 NotificationRepository 接口，处理站内通知相关的数据库操作
package repository

import (
	"time"

	"homeswap_server/internal/model"

	"gorm.io/gorm"
)

// notificationRepository NotificationRepository 接口的实现
type notificationRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewNotificationRepository 创建 NotificationRepository 实例
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create 创建通知
func (r *notificationRepository) Create(n *model.Notification) error {
	if err := r.db.Create(n).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

// FindByUserId 查找用户的通知，新的在前
func (r *notificationRepository) FindByUserId(userId string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.Where("user_id = ?", userId).Order("notify_id DESC").
		Limit(limit).Find(&notifications).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 user=%s", userId)
	}
	return notifications, nil
}

// MarkRead 标记通知已读
// 校验归属，影响行数为 0 表示通知不存在或不属于该用户
func (r *notificationRepository) MarkRead(userId string, notifyId int64, at time.Time) (int64, error) {
	tx := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND notify_id = ? AND read_at IS NULL", userId, notifyId).
		Update("read_at", at)
	if tx.Error != nil {
		return 0, wrapDBErrorf(tx.Error, "标记通知已读 user=%s notify=%d", userId, notifyId)
	}
	return tx.RowsAffected, nil
}
