// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"context"

	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/dto/respond"
	"homeswap_server/internal/service/notify"
)

// AuthService 认证业务接口
// 处理注册、登录、令牌刷新和管理员信誉记分
type AuthService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 刷新 Access Token
	RefreshToken(refreshToken string) (string, error)
	// AddPenalty 管理员记录用户信誉扣分
	AddPenalty(req request.AddPenaltyRequest) error
}

// ListingService 房源业务接口
// 处理房源的创建、更新、续期、下架和查询
type ListingService interface {
	// CreateListing 创建房源
	CreateListing(userId string, req request.CreateListingRequest) (*respond.ListingInfoRespond, error)
	// UpdateListing 更新房源描述
	UpdateListing(userId string, req request.UpdateListingRequest) (*respond.ListingInfoRespond, error)
	// RenewListing 续期房源
	RenewListing(userId, listingId string) (*respond.ListingInfoRespond, error)
	// CloseListing 主动下架房源
	CloseListing(userId, listingId string) error
	// GetMyListings 获取用户的全部房源
	GetMyListings(userId string) ([]respond.ListingInfoRespond, error)
	// GetListing 获取单个房源信息
	GetListing(listingId string) (*respond.ListingInfoRespond, error)
}

// MatchingService 匹配引擎业务接口
// 覆盖匹配运行、链生命周期、联系方式解锁和意向协商
type MatchingService interface {
	// RunForUser 以用户最近的在挂房源跑匹配
	RunForUser(ctx context.Context, userId string) (*respond.MatchRunRespond, error)
	// RunForListing 为指定房源跑匹配
	RunForListing(ctx context.Context, listingId, userId string) (*respond.MatchRunRespond, error)

	// AcceptChain 成员确认链
	AcceptChain(ctx context.Context, chainId, userId string) (*respond.ChainDetailRespond, error)
	// DeclineChain 成员拒绝链，链断裂并级联重跑
	DeclineChain(ctx context.Context, chainId, userId string) (*respond.ChainDetailRespond, error)
	// BreakChainByAdmin 管理员断链
	BreakChainByAdmin(ctx context.Context, chainId, adminUserId, reason string) (*respond.ChainDetailRespond, error)
	// RerunChainMembersByAdmin 管理员为链成员重跑匹配
	RerunChainMembersByAdmin(ctx context.Context, chainId string) ([]string, error)
	// GetMyChains 获取用户参与的链
	GetMyChains(userId string) ([]respond.ChainDetailRespond, error)
	// GetChainDetail 获取链详情（仅成员可见）
	GetChainDetail(chainId, userId string) (*respond.ChainDetailRespond, error)

	// RequestUnlock 发起联系方式解锁
	RequestUnlock(ctx context.Context, chainId, userId string) (*respond.UnlockStatusRespond, error)
	// ApproveUnlock 批准联系方式解锁
	ApproveUnlock(ctx context.Context, chainId, userId string) (*respond.UnlockStatusRespond, error)

	// RequestInterest 表达换房意向
	RequestInterest(ctx context.Context, userId, targetListingId, requesterListingId string) (*respond.InterestRespond, error)
	// ApproveInterest 房东批准意向，披露请求方联系方式
	ApproveInterest(ctx context.Context, userId, interestId string) (*respond.InterestRespond, error)
	// DeclineInterest 房东拒绝意向
	DeclineInterest(ctx context.Context, userId, interestId string) (*respond.InterestRespond, error)
	// ConfirmRenter 房东确认成交，双方房源成交并释放其余意向
	ConfirmRenter(ctx context.Context, userId, interestId string) (*respond.InterestRespond, error)
	// ListIncomingInterests 获取收到的意向
	ListIncomingInterests(userId string) ([]respond.InterestRespond, error)
	// ListOutgoingInterests 获取发出的意向
	ListOutgoingInterests(userId string) ([]respond.InterestRespond, error)
}

// NotifyService 通知业务接口
type NotifyService interface {
	// Publish 投递通知事件（非阻塞）
	Publish(event notify.Event)
	// ListByUser 获取用户通知列表
	ListByUser(userId string, limit int) ([]respond.NotificationRespond, error)
	// MarkRead 标记通知已读
	MarkRead(userId string, notifyId int64) error
}
