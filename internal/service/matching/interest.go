// 本文件实现一对多意向协商：发起/批准/拒绝/确认成交，独立于自动链匹配
package matching

import (
	"context"
	"time"

	"go.uber.org/zap"

	"homeswap_server/internal/dao/mysql/repository"
	"homeswap_server/internal/dto/respond"
	"homeswap_server/internal/model"
	"homeswap_server/internal/service/notify"
	"homeswap_server/pkg/aes"
	"homeswap_server/pkg/enum/chain/actor_type_enum"
	"homeswap_server/pkg/enum/interest/interest_status_enum"
	"homeswap_server/pkg/enum/listing/listing_status_enum"
	"homeswap_server/pkg/enum/notification/notification_type_enum"
	"homeswap_server/pkg/errorx"
	"homeswap_server/pkg/util/idgen"
)

// RequestInterest 发起意向请求
// requesterListingId 缺省取请求方最新在挂房源；重复请求复活旧记录并刷新过期时间
func (s *Service) RequestInterest(ctx context.Context, userId, targetListingId, requesterListingId string) (*respond.InterestRespond, error) {
	s.InlineSweep(ctx)

	target, err := s.repos.Listing.FindByUuid(targetListingId)
	if err != nil {
		return nil, err
	}
	if target.Status != listing_status_enum.ACTIVE {
		return nil, errorx.New(errorx.CodeInvalidStatus, "目标房源不在挂牌中")
	}
	if target.UserId == userId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能对自己的房源发起意向")
	}

	var requesterListing *model.SwapListing
	if requesterListingId != "" {
		requesterListing, err = s.repos.Listing.FindByUuid(requesterListingId)
		if err != nil {
			return nil, err
		}
		if requesterListing.UserId != userId {
			return nil, errorx.New(errorx.CodeForbidden, "无权使用该房源发起意向")
		}
		if requesterListing.Status != listing_status_enum.ACTIVE {
			return nil, errorx.New(errorx.CodeInvalidStatus, "你的房源不在挂牌中")
		}
	} else {
		actives, err := s.repos.Listing.FindActiveByUserId(userId)
		if err != nil {
			return nil, err
		}
		if len(actives) == 0 {
			return nil, errorx.New(errorx.CodeInvalidStatus, "没有在挂房源，请先创建房源")
		}
		requesterListing = &actives[0]
	}

	// 意向沿用图的边存在规则：户型兼容且预算够
	if scoreEdge(NewNode(requesterListing, "", 0), NewNode(target, "", 0)) == nil {
		return nil, errorx.New(errorx.CodeInvalidStatus, "你的需求与该房源不兼容")
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.conf.InterestRequestTtlHours) * time.Hour)

	interest, err := s.repos.Interest.FindByPair(targetListingId, requesterListing.Uuid)
	switch {
	case err == nil:
		// 复活旧记录：回到 REQUESTED 并清掉历史时间戳
		interest.Status = interest_status_enum.REQUESTED
		interest.RequesterUserId = userId
		interest.ExpiresAt.Time, interest.ExpiresAt.Valid = expiresAt, true
		interest.RespondedAt.Valid = false
		interest.ReleasedAt.Valid = false
		interest.ConfirmedAt.Valid = false
		if err := s.repos.Interest.Update(interest); err != nil {
			return nil, err
		}
	case errorx.IsNotFound(err):
		interest = &model.ListingInterest{
			Uuid:               idgen.NewInterestId(),
			ListingId:          targetListingId,
			RequesterListingId: requesterListing.Uuid,
			RequesterUserId:    userId,
			Status:             interest_status_enum.REQUESTED,
		}
		interest.ExpiresAt.Time, interest.ExpiresAt.Valid = expiresAt, true
		if err := s.repos.Interest.Create(interest); err != nil {
			if !repository.IsDuplicateKey(err) {
				return nil, err
			}
			// 并发竞态：对方刚建了同键记录，改走复活路径
			return s.RequestInterest(ctx, userId, targetListingId, requesterListing.Uuid)
		}
	default:
		return nil, err
	}

	s.publish(notify.Event{
		UserId:  target.UserId,
		Type:    notification_type_enum.INTEREST_REQUESTED,
		Title:   "收到换房意向",
		Message: "有用户对你的房源发起了换房意向，请在过期前响应",
		Payload: map[string]any{"interest_id": interest.Uuid, "listing_id": targetListingId},
	})
	s.publish(notify.Event{
		UserId:  userId,
		Type:    notification_type_enum.INTEREST_REQUESTED,
		Title:   "意向已发出",
		Message: "你的换房意向已发送给对方",
		Payload: map[string]any{"interest_id": interest.Uuid, "listing_id": targetListingId},
	})

	return s.buildInterestRespond(interest, false), nil
}

// ApproveInterest 房源方批准意向（同意交换联系方式）
// 已批准的重复调用幂等
func (s *Service) ApproveInterest(ctx context.Context, userId, interestId string) (*respond.InterestRespond, error) {
	s.InlineSweep(ctx)

	interest, target, err := s.ownedInterest(userId, interestId)
	if err != nil {
		return nil, err
	}
	if interest.Status == interest_status_enum.CONTACT_APPROVED {
		return s.buildInterestRespond(interest, true), nil
	}

	affected, err := s.repos.Interest.Transition(interestId,
		[]string{interest_status_enum.REQUESTED},
		interest_status_enum.CONTACT_APPROVED, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errorx.Newf(errorx.CodeInvalidStatus, "意向当前状态为 %s，不能批准", interest.Status)
	}

	s.publish(notify.Event{
		UserId:  interest.RequesterUserId,
		Type:    notification_type_enum.INTEREST_APPROVED,
		Title:   "意向已批准",
		Message: "对方同意交换联系方式，可以开始沟通",
		Payload: map[string]any{"interest_id": interest.Uuid, "listing_id": target.Uuid},
	})

	interest, err = s.repos.Interest.FindByUuid(interestId)
	if err != nil {
		return nil, err
	}
	return s.buildInterestRespond(interest, true), nil
}

// DeclineInterest 房源方拒绝意向
// 已拒绝的重复调用幂等
func (s *Service) DeclineInterest(ctx context.Context, userId, interestId string) (*respond.InterestRespond, error) {
	s.InlineSweep(ctx)

	interest, target, err := s.ownedInterest(userId, interestId)
	if err != nil {
		return nil, err
	}
	if interest.Status == interest_status_enum.DECLINED {
		return s.buildInterestRespond(interest, false), nil
	}

	affected, err := s.repos.Interest.Transition(interestId,
		interest_status_enum.Open(),
		interest_status_enum.DECLINED, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errorx.Newf(errorx.CodeInvalidStatus, "意向当前状态为 %s，不能拒绝", interest.Status)
	}

	s.publish(notify.Event{
		UserId:  interest.RequesterUserId,
		Type:    notification_type_enum.INTEREST_DECLINED,
		Title:   "意向被拒绝",
		Message: "对方拒绝了你的换房意向",
		Payload: map[string]any{"interest_id": interest.Uuid, "listing_id": target.Uuid},
	})

	interest, err = s.repos.Interest.FindByUuid(interestId)
	if err != nil {
		return nil, err
	}
	return s.buildInterestRespond(interest, false), nil
}

// ConfirmRenter 房源方确认成交，关闭交易
// 事务内：意向置 CONFIRMED_RENTER，双方房源置 MATCHED，两侧其他进行中意向全部释放
// 事务后：通知、为被释放的请求方级联重跑、强制断开触及双方房源的链
func (s *Service) ConfirmRenter(ctx context.Context, userId, interestId string) (*respond.InterestRespond, error) {
	s.InlineSweep(ctx)

	interest, _, err := s.ownedInterest(userId, interestId)
	if err != nil {
		return nil, err
	}

	var released []model.ListingInterest
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		affected, err := tx.Interest.Transition(interestId,
			interest_status_enum.Open(),
			interest_status_enum.CONFIRMED_RENTER, time.Now())
		if err != nil {
			return err
		}
		if affected == 0 {
			return errorx.Newf(errorx.CodeInvalidStatus, "意向当前状态为 %s，不能确认成交", interest.Status)
		}

		if err := tx.Listing.MarkMatched(
			[]string{interest.ListingId, interest.RequesterListingId},
			interest.Uuid, time.Now()); err != nil {
			return err
		}

		// 释放两侧房源上的其他进行中意向
		for _, listingId := range []string{interest.ListingId, interest.RequesterListingId} {
			open, err := tx.Interest.FindOpenTouching(listingId)
			if err != nil {
				return err
			}
			for i := range open {
				if open[i].Uuid == interest.Uuid {
					continue
				}
				if _, err := tx.Interest.Transition(open[i].Uuid,
					interest_status_enum.Open(),
					interest_status_enum.RELEASED, time.Now()); err != nil {
					return err
				}
				released = append(released, open[i])
			}
		}
		return nil
	})
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeInvalidStatus {
			return nil, err
		}
		zap.L().Error("confirm renter transaction error", zap.Error(err),
			zap.String("interest_id", interestId))
		return nil, errorx.ErrServerBusy
	}

	zap.L().Info("renter confirmed",
		zap.String("interest_id", interestId),
		zap.String("listing_id", interest.ListingId),
		zap.String("requester_listing_id", interest.RequesterListingId),
		zap.Int("released", len(released)))

	s.publish(notify.Event{
		UserId:  userId,
		Type:    notification_type_enum.RENTER_CONFIRMED,
		Title:   "成交确认",
		Message: "你已确认成交，双方房源已下架",
		Payload: map[string]any{"interest_id": interest.Uuid},
	})
	s.publish(notify.Event{
		UserId:  interest.RequesterUserId,
		Type:    notification_type_enum.RENTER_CONFIRMED,
		Title:   "成交确认",
		Message: "对方已确认与你成交，双方房源已下架",
		Payload: map[string]any{"interest_id": interest.Uuid},
	})

	rerunSeeds := make([]string, 0, len(released)+4)
	for i := range released {
		s.publish(notify.Event{
			UserId:  released[i].RequesterUserId,
			Type:    notification_type_enum.REQUEST_RELEASED,
			Title:   "意向已释放",
			Message: "目标房源已与他人成交，系统会自动为你重新匹配",
			Payload: map[string]any{"interest_id": released[i].Uuid},
		})
		rerunSeeds = append(rerunSeeds, released[i].RequesterListingId)
	}

	// 成交的房源不能再留在链里
	conflictAffected := s.BreakChainsForListings(ctx,
		[]string{interest.ListingId, interest.RequesterListingId}, actor_type_enum.SYSTEM)
	rerunSeeds = append(rerunSeeds, conflictAffected...)
	s.RerunCascade(ctx, rerunSeeds)

	interest, err = s.repos.Interest.FindByUuid(interestId)
	if err != nil {
		return nil, err
	}
	return s.buildInterestRespond(interest, true), nil
}

// ListIncomingInterests 查询指向我房源的意向
func (s *Service) ListIncomingInterests(userId string) ([]respond.InterestRespond, error) {
	listings, err := s.repos.Listing.FindByUserId(userId)
	if err != nil {
		return nil, err
	}
	listingIds := make([]string, 0, len(listings))
	for i := range listings {
		listingIds = append(listingIds, listings[i].Uuid)
	}
	interests, err := s.repos.Interest.FindByTargetListings(listingIds)
	if err != nil {
		return nil, err
	}
	list := make([]respond.InterestRespond, 0, len(interests))
	for i := range interests {
		disclose := interests[i].Status == interest_status_enum.CONTACT_APPROVED ||
			interests[i].Status == interest_status_enum.CONFIRMED_RENTER
		list = append(list, *s.buildInterestRespond(&interests[i], disclose))
	}
	return list, nil
}

// ListOutgoingInterests 查询我发出的意向
func (s *Service) ListOutgoingInterests(userId string) ([]respond.InterestRespond, error) {
	interests, err := s.repos.Interest.FindByRequesterUserId(userId)
	if err != nil {
		return nil, err
	}
	list := make([]respond.InterestRespond, 0, len(interests))
	for i := range interests {
		list = append(list, *s.buildInterestRespond(&interests[i], false))
	}
	return list, nil
}

// ownedInterest 加载意向并校验调用者是目标房源的所有者
func (s *Service) ownedInterest(userId, interestId string) (*model.ListingInterest, *model.SwapListing, error) {
	interest, err := s.repos.Interest.FindByUuid(interestId)
	if err != nil {
		return nil, nil, err
	}
	target, err := s.repos.Listing.FindByUuid(interest.ListingId)
	if err != nil {
		return nil, nil, err
	}
	if target.UserId != userId {
		return nil, nil, errorx.New(errorx.CodeForbidden, "只有房源所有者可以处理该意向")
	}
	return interest, target, nil
}

// buildInterestRespond 组装意向响应
// disclosePhone 为真时解密请求方电话（批准联系后房源方可见）
func (s *Service) buildInterestRespond(interest *model.ListingInterest, disclosePhone bool) *respond.InterestRespond {
	rsp := &respond.InterestRespond{
		InterestId:         interest.Uuid,
		ListingId:          interest.ListingId,
		RequesterListingId: interest.RequesterListingId,
		RequesterUserId:    interest.RequesterUserId,
		Status:             interest.Status,
		CreatedAt:          interest.CreatedAt.Format(time.RFC3339),
	}
	if interest.ExpiresAt.Valid {
		rsp.ExpiresAt = interest.ExpiresAt.Time.Format(time.RFC3339)
	}
	if interest.RespondedAt.Valid {
		rsp.RespondedAt = interest.RespondedAt.Time.Format(time.RFC3339)
	}
	if interest.ConfirmedAt.Valid {
		rsp.ConfirmedAt = interest.ConfirmedAt.Time.Format(time.RFC3339)
	}
	if interest.ReleasedAt.Valid {
		rsp.ReleasedAt = interest.ReleasedAt.Time.Format(time.RFC3339)
	}
	if disclosePhone {
		if requester, err := s.repos.User.FindByUuid(interest.RequesterUserId); err == nil && requester.Phone != "" {
			if phone, err := aes.Decrypt(requester.Phone, []byte(s.conf.PhoneKey)); err == nil {
				rsp.RequesterPhone = string(phone)
			}
		}
	}
	return rsp
}

// publish 发通知，sink 为 nil 时跳过
func (s *Service) publish(event notify.Event) {
	if s.sink == nil {
		return
	}
	s.sink.Publish(event)
}
