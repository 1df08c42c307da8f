// Package model 定义数据库实体模型
// 本文件定义用户信息模型，包含用户基本资料和认证信息
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo 用户信息模型
// 对应数据库 user_info 表
type UserInfo struct {
	gorm.Model

	// Uuid 用户唯一标识
	// 格式：U + 13位时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	// FullName 用户姓名
	FullName string `gorm:"column:full_name;type:varchar(50);not null;comment:姓名"`

	// Email 邮箱地址，用于登录
	Email string `gorm:"column:email;uniqueIndex;type:varchar(60);not null;comment:邮箱"`

	// Phone 电话号码密文
	// 落库前经 AES-GCM 加密，仅在联系方式解锁流程中解密
	Phone string `gorm:"column:phone;type:varchar(120);comment:电话号码密文"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// IsAdmin 管理员标志
	// 0=普通用户, 1=管理员
	IsAdmin int8 `gorm:"column:is_admin;not null;comment:是否是管理员，0.不是，1.是"`

	// PenaltyPoints 信誉扣分
	// 由外部爽约/取消上报流程累加，匹配排名可按配置读取
	PenaltyPoints int `gorm:"column:penalty_points;not null;default:0;comment:信誉扣分"`

	// LastLoginAt 上次登录时间
	LastLoginAt sql.NullTime `gorm:"column:last_login_at;type:datetime;comment:上次登录时间"`

	// RawPassword 明文密码（不存入数据库）
	// 用于接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword 校验密码是否正确
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
