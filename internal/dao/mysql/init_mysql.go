// Package mysql 初始化 MySQL 数据库连接
package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"homeswap_server/internal/config"
	"homeswap_server/internal/model"
)

// InitDB 初始化数据库连接并自动迁移表结构
// TranslateError 开启后，唯一键冲突会被翻译为 gorm.ErrDuplicatedKey，
// 链创建的并发去重依赖这一点
func InitDB(conf *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.UserInfo{},
		&model.SwapListing{},
		&model.MatchCandidate{},
		&model.SwapChain{},
		&model.SwapChainMember{},
		&model.ListingInterest{},
		&model.ContactUnlock{},
		&model.ContactUnlockApproval{},
		&model.Notification{},
	); err != nil {
		return nil, fmt.Errorf("自动迁移表结构失败: %w", err)
	}

	return db, nil
}
