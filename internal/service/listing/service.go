// Package listing 提供换房房源的业务逻辑
// 处理房源的创建、更新、续期、下架和查询
package listing

import (
	"time"

	"go.uber.org/zap"

	"homeswap_server/internal/dao/mysql/repository"
	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/dto/respond"
	"homeswap_server/internal/model"
	"homeswap_server/pkg/enum/listing/listing_status_enum"
	"homeswap_server/pkg/errorx"
	"homeswap_server/pkg/util/idgen"
)

// dateLayout 请求与响应中日期字段的格式
const dateLayout = "2006-01-02"

// listingService 房源业务逻辑实现
type listingService struct {
	repos   *repository.Repositories
	ttlDays int // 挂牌有效天数
}

// NewListingService 构造函数，注入 Repository 依赖
// ttlDays: 新建/续期房源的挂牌有效天数
func NewListingService(repos *repository.Repositories, ttlDays int) *listingService {
	return &listingService{repos: repos, ttlDays: ttlDays}
}

// CreateListing 创建房源
// 新房源直接进入在挂状态，挂牌期从当前时间起算
func (l *listingService) CreateListing(userId string, req request.CreateListingRequest) (*respond.ListingInfoRespond, error) {
	availableOn, err := time.Parse(dateLayout, req.AvailableOn)
	if err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "可交房日期格式应为 YYYY-MM-DD")
	}

	listing := &model.SwapListing{
		Uuid:        idgen.NewListingId(),
		UserId:      userId,
		CurrentCity: req.CurrentCity,
		CurrentType: req.CurrentType,
		CurrentRent: req.CurrentRent,
		AvailableOn: availableOn,
		DesiredCity: req.DesiredCity,
		DesiredType: req.DesiredType,
		MaxBudget:   req.MaxBudget,
		Timeline:    req.Timeline,
		Features:    req.Features,
		Status:      listing_status_enum.ACTIVE,
		ExpiresAt:   time.Now().AddDate(0, 0, l.ttlDays),
	}
	if err := l.repos.Listing.Create(listing); err != nil {
		zap.L().Error("创建房源失败", zap.Error(err))
		return nil, err
	}

	zap.L().Info("房源已创建",
		zap.String("listing_id", listing.Uuid), zap.String("user_id", userId))
	return buildListingRespond(listing), nil
}

// UpdateListing 更新房源描述
// 仅在挂房源可修改，成交和过期的房源保持原样
func (l *listingService) UpdateListing(userId string, req request.UpdateListingRequest) (*respond.ListingInfoRespond, error) {
	listing, err := l.ownedListing(userId, req.ListingId)
	if err != nil {
		return nil, err
	}
	if listing.Status != listing_status_enum.ACTIVE {
		return nil, errorx.Newf(errorx.CodeInvalidStatus, "房源当前状态为 %s，不能修改", listing.Status)
	}

	availableOn, err := time.Parse(dateLayout, req.AvailableOn)
	if err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "可交房日期格式应为 YYYY-MM-DD")
	}

	listing.CurrentCity = req.CurrentCity
	listing.CurrentType = req.CurrentType
	listing.CurrentRent = req.CurrentRent
	listing.AvailableOn = availableOn
	listing.DesiredCity = req.DesiredCity
	listing.DesiredType = req.DesiredType
	listing.MaxBudget = req.MaxBudget
	listing.Timeline = req.Timeline
	listing.Features = req.Features
	if err := l.repos.Listing.Update(listing); err != nil {
		zap.L().Error("更新房源失败", zap.Error(err), zap.String("listing_id", listing.Uuid))
		return nil, err
	}

	// 描述变了，旧的打分边不再可信
	if err := l.repos.Candidate.DeleteByListing(listing.Uuid); err != nil {
		zap.L().Warn("清理房源打分边失败", zap.Error(err), zap.String("listing_id", listing.Uuid))
	}
	return buildListingRespond(listing), nil
}

// RenewListing 续期房源
// 在挂或过期的房源都可以续期，续期后回到在挂状态重新参与匹配
// 成交的房源不能通过续期复活
func (l *listingService) RenewListing(userId, listingId string) (*respond.ListingInfoRespond, error) {
	expiresAt := time.Now().AddDate(0, 0, l.ttlDays)
	affected, err := l.repos.Listing.Renew(listingId, userId, expiresAt)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errorx.New(errorx.CodeInvalidStatus, "房源不存在、不属于你或已成交，无法续期")
	}

	listing, err := l.repos.Listing.FindByUuid(listingId)
	if err != nil {
		return nil, err
	}
	zap.L().Info("房源已续期",
		zap.String("listing_id", listingId), zap.Time("expires_at", expiresAt))
	return buildListingRespond(listing), nil
}

// CloseListing 主动下架房源
// 置为过期状态，之后仍可通过续期重新上架
func (l *listingService) CloseListing(userId, listingId string) error {
	listing, err := l.ownedListing(userId, listingId)
	if err != nil {
		return err
	}
	affected, err := l.repos.Listing.UpdateStatusIf(listing.Uuid,
		listing_status_enum.ACTIVE, listing_status_enum.EXPIRED)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errorx.Newf(errorx.CodeInvalidStatus, "房源当前状态为 %s，不能下架", listing.Status)
	}

	if err := l.repos.Candidate.DeleteByListing(listing.Uuid); err != nil {
		zap.L().Warn("清理房源打分边失败", zap.Error(err), zap.String("listing_id", listing.Uuid))
	}
	zap.L().Info("房源已下架", zap.String("listing_id", listingId))
	return nil
}

// GetMyListings 获取用户的全部房源，新的在前
func (l *listingService) GetMyListings(userId string) ([]respond.ListingInfoRespond, error) {
	listings, err := l.repos.Listing.FindByUserId(userId)
	if err != nil {
		return nil, err
	}
	rsp := make([]respond.ListingInfoRespond, 0, len(listings))
	for i := range listings {
		rsp = append(rsp, *buildListingRespond(&listings[i]))
	}
	return rsp, nil
}

// GetListing 获取单个房源信息
func (l *listingService) GetListing(listingId string) (*respond.ListingInfoRespond, error) {
	listing, err := l.repos.Listing.FindByUuid(listingId)
	if err != nil {
		return nil, err
	}
	return buildListingRespond(listing), nil
}

// ownedListing 加载房源并校验归属
func (l *listingService) ownedListing(userId, listingId string) (*model.SwapListing, error) {
	listing, err := l.repos.Listing.FindByUuid(listingId)
	if err != nil {
		return nil, err
	}
	if listing.UserId != userId {
		return nil, errorx.New(errorx.CodeForbidden, "只能操作自己的房源")
	}
	return listing, nil
}

// buildListingRespond 将房源模型转为响应结构
func buildListingRespond(listing *model.SwapListing) *respond.ListingInfoRespond {
	rsp := &respond.ListingInfoRespond{
		ListingId:   listing.Uuid,
		UserId:      listing.UserId,
		Status:      listing.Status,
		CurrentCity: listing.CurrentCity,
		CurrentType: listing.CurrentType,
		CurrentRent: listing.CurrentRent,
		AvailableOn: listing.AvailableOn.Format(dateLayout),
		DesiredCity: listing.DesiredCity,
		DesiredType: listing.DesiredType,
		MaxBudget:   listing.MaxBudget,
		Timeline:    listing.Timeline,
		Features:    listing.Features,
		ExpiresAt:   listing.ExpiresAt.Format(time.DateTime),
	}
	if listing.MatchedAt.Valid {
		rsp.MatchedAt = listing.MatchedAt.Time.Format(time.DateTime)
	}
	return rsp
}
