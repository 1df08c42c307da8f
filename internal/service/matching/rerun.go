// 本文件实现级联重跑：链断开/意向释放后受影响房源自动重新进入匹配
package matching

import (
	"context"

	"go.uber.org/zap"

	"homeswap_server/internal/service/notify"
	"homeswap_server/pkg/enum/notification/notification_type_enum"
	"homeswap_server/pkg/errorx"
)

// RerunCascade 为一组房源重跑匹配
// 用显式队列加已访问集合做广度优先处理，同一次触发里每个房源最多重跑一次，
// 重跑之间互相独立：单个失败记日志后继续
func (s *Service) RerunCascade(ctx context.Context, seedListingIds []string) {
	if len(seedListingIds) == 0 {
		return
	}
	visited := map[string]bool{}
	queue := make([]string, 0, len(seedListingIds))
	queue = append(queue, seedListingIds...)

	for len(queue) > 0 {
		listingId := queue[0]
		queue = queue[1:]
		if visited[listingId] {
			continue
		}
		visited[listingId] = true

		// 级联路径不做内联清扫，避免清扫再触发级联
		if _, err := s.runMatch(ctx, listingId, ""); err != nil {
			// 房源已非在挂（成交/过期）是正常出口，降级为 debug
			if errorx.GetCode(err) == errorx.CodeInvalidStatus {
				zap.L().Debug("rerun skipped",
					zap.String("listing_id", listingId), zap.Error(err))
				continue
			}
			zap.L().Warn("rerun match failed",
				zap.String("listing_id", listingId), zap.Error(err))
		}
	}
}

// RerunChainMembersByAdmin 管理员为链的全部成员重跑匹配
// 链无状态要求：常用于断链后人工补救
func (s *Service) RerunChainMembersByAdmin(ctx context.Context, chainId string) ([]string, error) {
	members, err := s.repos.ChainMember.FindByChainId(chainId)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, errorx.New(errorx.CodeNotFound, "链不存在或没有成员")
	}

	listingIds := make([]string, 0, len(members))
	for _, m := range members {
		listingIds = append(listingIds, m.ListingId)
		s.publish(notify.Event{
			UserId:  m.UserId,
			ChainId: chainId,
			Type:    notification_type_enum.MATCH_RERUN,
			Title:   "匹配重跑",
			Message: "管理员为你的房源重新运行了匹配",
		})
	}
	s.RerunCascade(ctx, listingIds)
	return listingIds, nil
}
