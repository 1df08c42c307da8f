// 本文件实现匹配运行入口：构图、直接互换优先、环形兜底、推荐与建议
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"homeswap_server/internal/config"
	"homeswap_server/internal/dao/mysql/repository"
	"homeswap_server/internal/dto/respond"
	"homeswap_server/internal/model"
	"homeswap_server/internal/service/notify"
	"homeswap_server/pkg/constants"
	"homeswap_server/pkg/enum/chain/chain_status_enum"
	"homeswap_server/pkg/enum/listing/listing_status_enum"
	"homeswap_server/pkg/enum/match/match_scenario_enum"
	"homeswap_server/pkg/errorx"
)

// 匹配结果徽标
const (
	BadgeDirectSwap     = "DIRECT_SWAP"     // 新建两人直接互换
	BadgeCircularSwap   = "CIRCULAR_SWAP"   // 新建环形链
	BadgeExistingChain  = "EXISTING_CHAIN"  // 同组房源的链已存在
	BadgeLockedConflict = "LOCKED_CONFLICT" // 候选成员被锁定链占用
)

// Service 匹配引擎服务
type Service struct {
	repos   *repository.Repositories
	sink    notify.Sink
	advisor Advisor
	cache   Cache // 可为 nil，推荐结果不缓存
	conf    *config.Config
}

// NewMatchingService 创建匹配引擎服务
func NewMatchingService(repos *repository.Repositories, sink notify.Sink, advisor Advisor, cache Cache, conf *config.Config) *Service {
	return &Service{
		repos:   repos,
		sink:    sink,
		advisor: advisor,
		cache:   cache,
		conf:    conf,
	}
}

// RunForUser 以用户最近的在挂房源跑匹配
func (s *Service) RunForUser(ctx context.Context, userId string) (*respond.MatchRunRespond, error) {
	listings, err := s.repos.Listing.FindActiveByUserId(userId)
	if err != nil {
		zap.L().Error("find active listings error", zap.Error(err), zap.String("user_id", userId))
		return nil, errorx.ErrServerBusy
	}
	if len(listings) == 0 {
		return nil, errorx.New(errorx.CodeInvalidStatus, "没有在挂房源，请先创建房源")
	}
	// FindActiveByUserId 按创建时间倒序，取最新一条
	return s.RunForListing(ctx, listings[0].Uuid, userId)
}

// RunForListing 为指定房源跑一次完整匹配
// userId 非空时校验归属；系统触发（清扫、级联重跑）传空
func (s *Service) RunForListing(ctx context.Context, listingId, userId string) (*respond.MatchRunRespond, error) {
	// 任何进入匹配的请求先做一轮轻量清扫，避免对过期状态做决策
	s.InlineSweep(ctx)
	return s.runMatch(ctx, listingId, userId)
}

// runMatch 匹配主流程，不含内联清扫（级联重跑走这里避免递归清扫）
func (s *Service) runMatch(ctx context.Context, listingId, userId string) (*respond.MatchRunRespond, error) {
	listing, err := s.repos.Listing.FindByUuid(listingId)
	if err != nil {
		return nil, err
	}
	if userId != "" && listing.UserId != userId {
		return nil, errorx.New(errorx.CodeForbidden, "无权操作该房源")
	}
	if listing.Status != listing_status_enum.ACTIVE {
		return nil, errorx.Newf(errorx.CodeInvalidStatus, "房源当前状态为 %s，不参与匹配", listing.Status)
	}

	// 快路径：房源已在进行中的链里，直接返回该链
	if existing, err := s.findActiveChainByListing(listingId); err != nil {
		return nil, err
	} else if existing != nil {
		detail, err := s.BuildChainDetail(existing, "")
		if err != nil {
			return nil, err
		}
		return &respond.MatchRunRespond{
			Found:         true,
			Message:       "房源已在进行中的交换链里",
			MatchScenario: match_scenario_enum.ONE_TO_ONE,
			Badge:         BadgeExistingChain,
			ChainId:       existing.Uuid,
			ChainStatus:   existing.Status,
			Chain:         detail,
		}, nil
	}

	g, err := s.buildGraph()
	if err != nil {
		return nil, err
	}
	if g.Nodes[listingId] == nil {
		// 理论上不可达：房源在挂且不在进行中链里
		return nil, errorx.New(errorx.CodeInvalidStatus, "房源不在匹配池中")
	}

	// 把本轮图的打分边快照落库，仅作检查用途
	s.persistCandidates(g)

	edges := g.RankedEdgesFrom(listingId)
	stats := &respond.MatchStatsRespond{CandidatesScored: len(edges)}
	for _, e := range edges {
		if e.Mutual {
			stats.MutualMatches++
		}
	}

	// 直接互换优先于任何环
	if direct := g.BestDirectPair(listingId); direct != nil {
		rev := g.Edge(direct.To, direct.From)
		avg := (direct.RankScore + rev.RankScore) / 2
		return s.createChainFromCycle(ctx, g, []string{listingId, direct.To}, avg, stats)
	}

	// 环形兜底：3-4 人环
	cycles := g.FindCycles(listingId)
	stats.CyclesFound = len(cycles)
	if best := BestCycle(cycles); best != nil {
		return s.createChainFromCycle(ctx, g, best.ListingIds, int(best.AvgRank), stats)
	}

	// 没有成环：返回单向推荐或独立场景
	return s.buildRecommendations(ctx, g, listingId, edges, stats)
}

// findActiveChainByListing 查找房源所在的 PENDING/LOCKED 链
func (s *Service) findActiveChainByListing(listingId string) (*model.SwapChain, error) {
	chainIds, err := s.repos.ChainMember.FindChainIdsByListingId(listingId)
	if err != nil {
		zap.L().Error("find chain ids error", zap.Error(err), zap.String("listing_id", listingId))
		return nil, errorx.ErrServerBusy
	}
	if len(chainIds) == 0 {
		return nil, nil
	}
	chains, err := s.repos.Chain.FindByUuids(chainIds)
	if err != nil {
		zap.L().Error("find chains error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	for i := range chains {
		if chains[i].Status == chain_status_enum.PENDING || chains[i].Status == chain_status_enum.LOCKED {
			return &chains[i], nil
		}
	}
	return nil, nil
}

// buildGraph 加载匹配池并构建兼容图
// 已在进行中链里的房源不进池
func (s *Service) buildGraph() (*Graph, error) {
	listings, err := s.repos.Listing.FindAllActive()
	if err != nil {
		zap.L().Error("find active listings error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	busyIds, err := s.repos.ChainMember.FindBusyListingIds(
		[]string{chain_status_enum.PENDING, chain_status_enum.LOCKED})
	if err != nil {
		zap.L().Error("find busy listings error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	busy := make(map[string]bool, len(busyIds))
	for _, id := range busyIds {
		busy[id] = true
	}

	userIds := make([]string, 0, len(listings))
	seen := map[string]bool{}
	for i := range listings {
		if !seen[listings[i].UserId] {
			seen[listings[i].UserId] = true
			userIds = append(userIds, listings[i].UserId)
		}
	}
	users, err := s.repos.User.FindByUuids(userIds)
	if err != nil {
		zap.L().Error("find listing owners error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	owners := make(map[string]*model.UserInfo, len(users))
	for i := range users {
		owners[users[i].Uuid] = &users[i]
	}

	nodes := make([]*ListingNode, 0, len(listings))
	for i := range listings {
		if busy[listings[i].Uuid] {
			continue
		}
		name := ""
		penalty := 0
		if owner := owners[listings[i].UserId]; owner != nil {
			name = owner.FullName
			penalty = owner.PenaltyPoints
		}
		nodes = append(nodes, NewNode(&listings[i], name, penalty))
	}
	return BuildGraph(nodes, s.conf.RankPenaltyWeight), nil
}

// persistCandidates 把整张图的打分边落库，失败只记日志
// 池内每个房源的出边整组重建，零出边也会清掉残留的旧边
func (s *Service) persistCandidates(g *Graph) {
	for fromId, out := range g.Edges {
		rows := make([]model.MatchCandidate, 0, len(out))
		for _, e := range out {
			rows = append(rows, model.MatchCandidate{
				FromListingId: e.From,
				ToListingId:   e.To,
				CityScore:     e.CityScore,
				TypeScore:     e.TypeScore,
				BudgetScore:   e.BudgetScore,
				TimelineScore: e.TimelineScore,
				FeatureScore:  e.FeatureScore,
				TotalScore:    e.TotalScore,
			})
		}
		if err := s.repos.Candidate.ReplaceForListing(fromId, rows); err != nil {
			zap.L().Warn("persist match candidates failed",
				zap.Error(err), zap.String("listing_id", fromId))
		}
	}
}

// buildRecommendations 组装无链场景的响应
// 独立场景（零候选零环）请求一次建议
func (s *Service) buildRecommendations(ctx context.Context, g *Graph, listingId string, edges []*Edge, stats *respond.MatchStatsRespond) (*respond.MatchRunRespond, error) {
	limit := s.conf.RecommendationLimit
	if limit > len(edges) {
		limit = len(edges)
	}
	recs := make([]respond.RecommendationRespond, 0, limit)
	for _, e := range edges[:limit] {
		target := g.Nodes[e.To]
		recs = append(recs, respond.RecommendationRespond{
			ListingId:   e.To,
			OwnerName:   target.OwnerName,
			City:        target.CurrentCity,
			HousingType: target.CurrentType,
			Rent:        target.CurrentRent,
			TotalScore:  e.TotalScore,
			RankScore:   e.RankScore,
			Mutual:      e.Mutual,
			Breakdown: respond.ScoreBreakdown{
				CityScore:     e.CityScore,
				TypeScore:     e.TypeScore,
				BudgetScore:   e.BudgetScore,
				TimelineScore: e.TimelineScore,
				FeatureScore:  e.FeatureScore,
			},
		})
	}

	rsp := &respond.MatchRunRespond{
		Found: false,
		Stats: stats,
	}
	if len(recs) > 0 {
		rsp.MatchScenario = match_scenario_enum.ONE_TO_MANY
		rsp.Message = fmt.Sprintf("暂未成链，找到 %d 个单向候选，可以主动发起意向", len(recs))
		rsp.Recommendations = recs
		s.cacheRecommendations(ctx, listingId, recs)
	} else {
		rsp.MatchScenario = match_scenario_enum.INDEPENDENT
		rsp.Message = "没有找到兼容房源"
		if s.advisor != nil {
			rsp.AiSuggestions = s.advisor.Suggest(ctx, g.Nodes[listingId], rsp.MatchScenario, 0)
		}
	}
	return rsp, nil
}

// cacheRecommendations 缓存推荐结果，失败只记日志
func (s *Service) cacheRecommendations(ctx context.Context, listingId string, recs []respond.RecommendationRespond) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(recs)
	if err != nil {
		zap.L().Warn("marshal recommendations failed", zap.Error(err))
		return
	}
	key := "match:recs:" + listingId
	if err := s.cache.Set(ctx, key, string(data),
		time.Minute*constants.REDIS_RECS_TIMEOUT_MINUTES); err != nil {
		zap.L().Warn("cache recommendations failed", zap.Error(err), zap.String("key", key))
	}
}
