// Package repository 提供数据访问层的具体实现
// 本文件实现 Repository 层聚合与事务入口
package repository

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db *gorm.DB // GORM 数据库实例
	// TxRunner 可注入的事务执行器，内存实现用快照回退模拟回滚
	TxRunner     func(fn func(txRepos *Repositories) error) error
	User         UserRepository         // 用户 Repository
	Listing      ListingRepository      // 房源 Repository
	Candidate    CandidateRepository    // 匹配候选 Repository
	Chain        ChainRepository        // 交换链 Repository
	ChainMember  ChainMemberRepository  // 链成员 Repository
	Interest     InterestRepository     // 意向 Repository
	Unlock       UnlockRepository       // 解锁 Repository
	Notification NotificationRepository // 通知 Repository
}

// NewRepositories 创建所有 Repository 实例
// db: GORM 数据库实例
// 返回: Repositories 聚合指针
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Listing:      NewListingRepository(db),
		Candidate:    NewCandidateRepository(db),
		Chain:        NewChainRepository(db),
		ChainMember:  NewChainMemberRepository(db),
		Interest:     NewInterestRepository(db),
		Unlock:       NewUnlockRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// 优先走注入的 TxRunner；都没有时（未绑定数据库实例）直接执行函数体
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.TxRunner != nil {
		return r.TxRunner(fn)
	}
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
