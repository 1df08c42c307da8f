// Package model 定义数据库实体模型
// 本文件定义站内通知模型
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Notification 站内通知
// 对应数据库 notification 表
// 由 notify.Sink 异步落库，投递失败只记日志，不影响业务事务
type Notification struct {
	gorm.Model

	// NotifyId 雪花 ID，全局唯一
	NotifyId int64 `gorm:"column:notify_id;uniqueIndex;not null;comment:通知雪花id"`

	// UserId 接收者用户 UUID
	UserId string `gorm:"column:user_id;index;type:char(20);not null;comment:接收者ID"`

	// ChainId 关联链 UUID（可空）
	ChainId string `gorm:"column:chain_id;type:char(20);comment:关联链ID"`

	// Type 通知类型，见 notification_type_enum
	Type string `gorm:"column:type;type:varchar(30);not null;comment:通知类型"`

	// Title 标题
	Title string `gorm:"column:title;type:varchar(100);not null;comment:标题"`

	// Message 正文
	Message string `gorm:"column:message;type:varchar(255);not null;comment:正文"`

	// Payload 附加数据（JSON 序列化）
	Payload map[string]any `gorm:"column:payload;serializer:json;type:varchar(1000);comment:附加数据"`

	// ReadAt 已读时间
	ReadAt sql.NullTime `gorm:"column:read_at;type:datetime;comment:已读时间"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notification"
}
