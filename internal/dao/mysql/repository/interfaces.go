// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"errors"
	"time"

	"homeswap_server/internal/model"
	"homeswap_server/pkg/errorx"

	"gorm.io/gorm"
)

// ==================== 错误包装辅助函数 ====================

// wrapDBError 包装数据库错误
// 根据错误类型返回不同的错误码：
//   - ErrRecordNotFound -> CodeNotFound
//   - 其他错误 -> CodeDBError
//
// err: 原始错误
// msg: 错误描述
// 返回: 包装后的错误
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
// 功能同 wrapDBError，但支持 fmt.Sprintf 风格的格式化
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// IsDuplicateKey 判断错误是否为唯一键冲突
// 依赖 gorm.Config.TranslateError 将驱动错误翻译为 gorm.ErrDuplicatedKey
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByEmail 根据邮箱查找用户（登录入口）
	FindByEmail(email string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// UpdateLastLogin 记录最近登录时间
	UpdateLastLogin(uuid string, at time.Time) error
	// AddPenaltyPoints 累加信誉扣分
	AddPenaltyPoints(uuid string, delta int) error
}

// ListingRepository 房源数据访问接口
type ListingRepository interface {
	// FindByUuid 根据 UUID 查找房源
	FindByUuid(uuid string) (*model.SwapListing, error)
	// FindByUuids 批量根据 UUID 查找房源
	FindByUuids(uuids []string) ([]model.SwapListing, error)
	// FindByUserId 查找用户的全部房源
	FindByUserId(userId string) ([]model.SwapListing, error)
	// FindActiveByUserId 查找用户的在挂房源
	FindActiveByUserId(userId string) ([]model.SwapListing, error)
	// FindAllActive 查找所有在挂房源（构图用）
	FindAllActive() ([]model.SwapListing, error)
	// FindExpired 查找已过截止时间仍在挂的房源，最旧优先
	FindExpired(before time.Time, limit int) ([]model.SwapListing, error)
	// Create 创建房源
	Create(listing *model.SwapListing) error
	// Update 更新房源（全字段）
	Update(listing *model.SwapListing) error
	// UpdateStatusIf 条件更新状态，返回影响行数
	UpdateStatusIf(uuid string, from string, to string) (int64, error)
	// Renew 续期房源：更新过期时间并回到在挂状态，返回影响行数
	Renew(uuid string, userId string, expiresAt time.Time) (int64, error)
	// MarkMatched 批量标记房源成交
	MarkMatched(uuids []string, interestId string, at time.Time) error
}

// CandidateRepository 匹配候选（打分边）数据访问接口
type CandidateRepository interface {
	// ReplaceForListing 重建某房源的全部出边
	ReplaceForListing(fromListingId string, rows []model.MatchCandidate) error
	// FindFrom 查找某房源的全部出边
	FindFrom(fromListingId string) ([]model.MatchCandidate, error)
	// FindEdge 查找指定方向的一条边
	FindEdge(fromListingId, toListingId string) (*model.MatchCandidate, error)
	// DeleteByListing 删除某房源相关的全部边（出边与入边）
	DeleteByListing(listingId string) error
}

// ChainRepository 交换链数据访问接口
type ChainRepository interface {
	// FindByUuid 根据 UUID 查找链
	FindByUuid(uuid string) (*model.SwapChain, error)
	// FindByUuids 批量根据 UUID 查找链
	FindByUuids(uuids []string) ([]model.SwapChain, error)
	// FindByHash 根据规范化环哈希查找链
	FindByHash(cycleHash string) (*model.SwapChain, error)
	// FindExpired 查找已过确认截止时间的待确认链，最旧优先
	FindExpired(before time.Time, limit int) ([]model.SwapChain, error)
	// Create 创建链
	Create(chain *model.SwapChain) error
	// Lock 将待确认链置为锁定并清空截止时间，返回影响行数
	Lock(uuid string) (int64, error)
	// MarkBroken 将链从允许的状态置为断裂，返回影响行数
	MarkBroken(uuid string, reason, actor, byUserId string, at time.Time, allowedFrom []string) (int64, error)
}

// ChainMemberRepository 交换链成员数据访问接口
type ChainMemberRepository interface {
	// CreateBatch 批量创建成员
	CreateBatch(members []model.SwapChainMember) error
	// FindByChainId 查找链的全部成员，按位置排序
	FindByChainId(chainId string) ([]model.SwapChainMember, error)
	// FindByChainIds 批量查找多条链的成员
	FindByChainIds(chainIds []string) ([]model.SwapChainMember, error)
	// FindChainIdsByUserId 查找用户参与的链 ID
	FindChainIdsByUserId(userId string) ([]string, error)
	// FindChainIdsByListingId 查找房源参与的链 ID
	FindChainIdsByListingId(listingId string) ([]string, error)
	// FindBusyListingIds 查找处于指定状态链中的房源 ID
	FindBusyListingIds(chainStatuses []string) ([]string, error)
	// Accept 标记成员已确认，返回影响行数
	Accept(chainId, userId string) (int64, error)
	// CountUnaccepted 统计链中未确认成员数
	CountUnaccepted(chainId string) (int64, error)
}

// InterestRepository 房源意向数据访问接口
type InterestRepository interface {
	// FindByUuid 根据 UUID 查找意向
	FindByUuid(uuid string) (*model.ListingInterest, error)
	// FindByPair 根据 (目标房源, 请求方房源) 查找意向
	FindByPair(listingId, requesterListingId string) (*model.ListingInterest, error)
	// FindByTargetListings 查找指向这些房源的意向（收到的请求）
	FindByTargetListings(listingIds []string) ([]model.ListingInterest, error)
	// FindByRequesterUserId 查找用户发出的意向
	FindByRequesterUserId(userId string) ([]model.ListingInterest, error)
	// FindOpenByListing 查找目标房源上仍在进行中的意向
	FindOpenByListing(listingId string) ([]model.ListingInterest, error)
	// FindOpenTouching 查找与房源相关（作为目标或请求方）的进行中意向
	FindOpenTouching(listingId string) ([]model.ListingInterest, error)
	// FindExpired 查找已过期仍在进行中的意向，最旧优先
	FindExpired(before time.Time, limit int) ([]model.ListingInterest, error)
	// Create 创建意向
	Create(interest *model.ListingInterest) error
	// Update 更新意向（全字段）
	Update(interest *model.ListingInterest) error
	// Transition 条件状态流转并打时间戳，返回影响行数
	Transition(uuid string, from []string, to string, at time.Time) (int64, error)
}

// UnlockRepository 联系方式解锁数据访问接口
type UnlockRepository interface {
	// FindByChainId 查找链上的解锁请求
	FindByChainId(chainId string) (*model.ContactUnlock, error)
	// Create 创建解锁请求
	Create(unlock *model.ContactUnlock) error
	// UpsertApproval 写入或更新批准记录
	UpsertApproval(approval *model.ContactUnlockApproval) error
	// FindApprovals 查找解锁请求的全部批准记录
	FindApprovals(unlockId string) ([]model.ContactUnlockApproval, error)
	// CountApproved 统计已批准人数
	CountApproved(unlockId string) (int64, error)
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	// Create 创建通知
	Create(n *model.Notification) error
	// FindByUserId 查找用户的通知，新的在前
	FindByUserId(userId string, limit int) ([]model.Notification, error)
	// MarkRead 标记通知已读，返回影响行数
	MarkRead(userId string, notifyId int64, at time.Time) (int64, error)
}
