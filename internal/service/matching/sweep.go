// 本文件实现生命周期清扫：过期房源、过期待确认链、过期意向
// 定时器按批调用，业务入口内联调用；清扫失败只记日志，从不中断调用方
package matching

import (
	"context"
	"time"

	"go.uber.org/zap"

	"homeswap_server/internal/service/notify"
	"homeswap_server/pkg/enum/chain/actor_type_enum"
	"homeswap_server/pkg/enum/chain/chain_break_reason_enum"
	"homeswap_server/pkg/enum/interest/interest_status_enum"
	"homeswap_server/pkg/enum/listing/listing_status_enum"
	"homeswap_server/pkg/enum/notification/notification_type_enum"
)

// InlineSweep 业务入口前的轻量清扫
// 保证请求不会基于过期状态做决策，任何失败都吞掉
func (s *Service) InlineSweep(ctx context.Context) {
	if _, err := s.ExpireListings(ctx); err != nil {
		zap.L().Warn("inline listing sweep failed", zap.Error(err))
	}
	if _, err := s.ExpirePendingChains(ctx); err != nil {
		zap.L().Warn("inline chain sweep failed", zap.Error(err))
	}
	if _, err := s.ExpireInterests(ctx); err != nil {
		zap.L().Warn("inline interest sweep failed", zap.Error(err))
	}
}

// ExpireListings 下架过了挂牌期限的房源，最旧优先，单批有上限
// 返回处理条数
func (s *Service) ExpireListings(ctx context.Context) (int, error) {
	listings, err := s.repos.Listing.FindExpired(time.Now(), s.conf.ListingExpireSweepLimit)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range listings {
		affected, err := s.repos.Listing.UpdateStatusIf(listings[i].Uuid,
			listing_status_enum.ACTIVE, listing_status_enum.EXPIRED)
		if err != nil {
			zap.L().Warn("expire listing failed",
				zap.Error(err), zap.String("listing_id", listings[i].Uuid))
			continue
		}
		if affected == 0 {
			continue // 并发方已处理
		}
		count++
		// 过期房源的打分边不再有意义
		if err := s.repos.Candidate.DeleteByListing(listings[i].Uuid); err != nil {
			zap.L().Warn("clear candidates of expired listing failed",
				zap.Error(err), zap.String("listing_id", listings[i].Uuid))
		}
	}
	if count > 0 {
		zap.L().Info("listings expired", zap.Int("count", count))
	}
	return count, nil
}

// ExpirePendingChains 断开过了确认截止时间的待确认链并级联重跑
// 锁定链不受影响，单批有上限
func (s *Service) ExpirePendingChains(ctx context.Context) (int, error) {
	chains, err := s.repos.Chain.FindExpired(time.Now(), s.conf.ChainExpireSweepLimit)
	if err != nil {
		return 0, err
	}
	count := 0
	var seeds []string
	for i := range chains {
		listingIds, err := s.breakChain(&chains[i],
			chain_break_reason_enum.EXPIRED, actor_type_enum.SYSTEM, "")
		if err != nil {
			zap.L().Warn("expire chain failed",
				zap.Error(err), zap.String("chain_id", chains[i].Uuid))
			continue
		}
		if len(listingIds) == 0 {
			continue // 并发方已处理
		}
		count++
		seeds = append(seeds, listingIds...)
	}
	if count > 0 {
		zap.L().Info("pending chains expired", zap.Int("count", count))
		s.RerunCascade(ctx, seeds)
	}
	return count, nil
}

// ExpireInterests 关闭过期的进行中意向，通知双方并为请求方重跑
// 单批有上限
func (s *Service) ExpireInterests(ctx context.Context) (int, error) {
	interests, err := s.repos.Interest.FindExpired(time.Now(), s.conf.InterestExpireSweepLimit)
	if err != nil {
		return 0, err
	}
	count := 0
	var seeds []string
	for i := range interests {
		affected, err := s.repos.Interest.Transition(interests[i].Uuid,
			interest_status_enum.Open(), interest_status_enum.EXPIRED, time.Now())
		if err != nil {
			zap.L().Warn("expire interest failed",
				zap.Error(err), zap.String("interest_id", interests[i].Uuid))
			continue
		}
		if affected == 0 {
			continue // 并发方已处理
		}
		count++

		s.publish(notify.Event{
			UserId:  interests[i].RequesterUserId,
			Type:    notification_type_enum.INTEREST_EXPIRED,
			Title:   "意向已过期",
			Message: "你的换房意向超时未获响应，系统会自动为你重新匹配",
			Payload: map[string]any{"interest_id": interests[i].Uuid},
		})
		if target, err := s.repos.Listing.FindByUuid(interests[i].ListingId); err == nil {
			s.publish(notify.Event{
				UserId:  target.UserId,
				Type:    notification_type_enum.INTEREST_EXPIRED,
				Title:   "意向已过期",
				Message: "一条指向你房源的换房意向已超时关闭",
				Payload: map[string]any{"interest_id": interests[i].Uuid},
			})
		}
		seeds = append(seeds, interests[i].RequesterListingId)
	}
	if count > 0 {
		zap.L().Info("interests expired", zap.Int("count", count))
		s.RerunCascade(ctx, seeds)
	}
	return count, nil
}
