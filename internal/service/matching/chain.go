// 本文件实现链生命周期：创建去重、确认/拒绝/断开、联系方式解锁、详情组装
package matching

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"homeswap_server/internal/dao/mysql/repository"
	"homeswap_server/internal/dto/respond"
	"homeswap_server/internal/model"
	"homeswap_server/internal/service/notify"
	"homeswap_server/pkg/aes"
	"homeswap_server/pkg/enum/chain/actor_type_enum"
	"homeswap_server/pkg/enum/chain/chain_break_reason_enum"
	"homeswap_server/pkg/enum/chain/chain_status_enum"
	"homeswap_server/pkg/enum/chain/chain_type_enum"
	"homeswap_server/pkg/enum/match/match_scenario_enum"
	"homeswap_server/pkg/enum/notification/notification_type_enum"
	"homeswap_server/pkg/errorx"
	"homeswap_server/pkg/util/idgen"
)

// createChainFromCycle 把发现的环落成一条 PENDING 链
// 去重顺序：哈希预查（快路径）→ 锁定冲突 → 创建（唯一索引兜底并发竞态）
func (s *Service) createChainFromCycle(ctx context.Context, g *Graph, listingIds []string, avgScore int, stats *respond.MatchStatsRespond) (*respond.MatchRunRespond, error) {
	hash := CanonicalHash(listingIds)

	// 快路径：同组房源的链已存在（含 BROKEN，哈希是权威去重键）
	if existing, err := s.repos.Chain.FindByHash(hash); err == nil {
		return s.existingChainOutcome(existing, stats)
	} else if !errorx.IsNotFound(err) {
		zap.L().Error("find chain by hash error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 锁定冲突：候选成员已在锁定链里，拒绝建链
	lockedIds, err := s.repos.ChainMember.FindBusyListingIds([]string{chain_status_enum.LOCKED})
	if err != nil {
		zap.L().Error("find locked listings error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	locked := make(map[string]bool, len(lockedIds))
	for _, id := range lockedIds {
		locked[id] = true
	}
	for _, id := range listingIds {
		if locked[id] {
			return &respond.MatchRunRespond{
				Found:         false,
				Message:       "候选成员的房源已被锁定链占用",
				MatchScenario: match_scenario_enum.ONE_TO_ONE,
				Badge:         BadgeLockedConflict,
				Stats:         stats,
			}, nil
		}
	}

	chainType := chain_type_enum.CIRCULAR
	badge := BadgeCircularSwap
	if len(listingIds) == 2 {
		chainType = chain_type_enum.DIRECT
		badge = BadgeDirectSwap
	}

	chain := &model.SwapChain{
		Uuid:      idgen.NewChainId(),
		CycleSize: len(listingIds),
		AvgScore:  avgScore,
		Status:    chain_status_enum.PENDING,
		Type:      chainType,
		CycleHash: hash,
	}
	chain.AcceptBy.Time = time.Now().Add(time.Duration(s.conf.ChainAcceptTtlHours) * time.Hour)
	chain.AcceptBy.Valid = true

	members := make([]model.SwapChainMember, 0, len(listingIds))
	for i, id := range listingIds {
		members = append(members, model.SwapChainMember{
			ChainId:   chain.Uuid,
			ListingId: id,
			UserId:    g.Nodes[id].UserId,
			Position:  i,
		})
	}

	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Chain.Create(chain); err != nil {
			return err
		}
		return tx.ChainMember.CreateBatch(members)
	})
	if err != nil {
		// 并发竞态：别的运行刚创建了同组链，按已存在处理
		if repository.IsDuplicateKey(err) {
			if existing, findErr := s.repos.Chain.FindByHash(hash); findErr == nil {
				return s.existingChainOutcome(existing, stats)
			}
		}
		zap.L().Error("create chain error", zap.Error(err), zap.String("cycle_hash", hash))
		return nil, errorx.ErrServerBusy
	}

	zap.L().Info("chain created",
		zap.String("chain_id", chain.Uuid),
		zap.String("type", chainType),
		zap.Int("cycle_size", chain.CycleSize),
		zap.Int("avg_score", avgScore))

	s.notifyChainMembers(members, chain.Uuid, notification_type_enum.CHAIN_PENDING,
		"发现换房链",
		fmt.Sprintf("你的房源进入了一条 %d 人换房链，请在截止时间前确认", chain.CycleSize),
		map[string]any{"cycle_size": chain.CycleSize, "avg_score": avgScore})

	detail, err := s.BuildChainDetail(chain, "")
	if err != nil {
		return nil, err
	}
	return &respond.MatchRunRespond{
		Found:         true,
		Message:       "成功创建换房链，等待全员确认",
		MatchScenario: match_scenario_enum.ONE_TO_ONE,
		Badge:         badge,
		ChainId:       chain.Uuid,
		ChainStatus:   chain.Status,
		Chain:         detail,
		Stats:         stats,
	}, nil
}

// existingChainOutcome 哈希命中时的幂等结果
func (s *Service) existingChainOutcome(chain *model.SwapChain, stats *respond.MatchStatsRespond) (*respond.MatchRunRespond, error) {
	detail, err := s.BuildChainDetail(chain, "")
	if err != nil {
		return nil, err
	}
	return &respond.MatchRunRespond{
		Found:         chain.Status != chain_status_enum.BROKEN,
		Message:       fmt.Sprintf("同组房源的换房链已存在，状态 %s", chain.Status),
		MatchScenario: match_scenario_enum.ONE_TO_ONE,
		Badge:         BadgeExistingChain,
		ChainId:       chain.Uuid,
		ChainStatus:   chain.Status,
		Chain:         detail,
		Stats:         stats,
	}, nil
}

// AcceptChain 成员确认交换链
// 过了截止时间的确认会把链断为 EXPIRED 并返回失败
func (s *Service) AcceptChain(ctx context.Context, chainId, userId string) (*respond.ChainDetailRespond, error) {
	s.InlineSweep(ctx)

	chain, err := s.repos.Chain.FindByUuid(chainId)
	if err != nil {
		return nil, err
	}
	members, err := s.repos.ChainMember.FindByChainId(chainId)
	if err != nil {
		return nil, err
	}
	if !isMemberUser(members, userId) {
		return nil, errorx.New(errorx.CodeForbidden, "你不是该链成员")
	}
	if chain.Status != chain_status_enum.PENDING {
		return nil, errorx.Newf(errorx.CodeInvalidStatus, "链当前状态为 %s，不能确认", chain.Status)
	}

	if chain.AcceptBy.Valid && time.Now().After(chain.AcceptBy.Time) {
		brokenListings, _ := s.breakChain(chain, chain_break_reason_enum.EXPIRED,
			actor_type_enum.SYSTEM, "")
		s.RerunCascade(ctx, brokenListings)
		return nil, errorx.New(errorx.CodeInvalidStatus, "确认截止时间已过，链已断开")
	}

	// 重复确认影响 0 行，幂等继续
	if _, err := s.repos.ChainMember.Accept(chainId, userId); err != nil {
		return nil, err
	}

	unaccepted, err := s.repos.ChainMember.CountUnaccepted(chainId)
	if err != nil {
		return nil, err
	}
	if unaccepted == 0 {
		affected, err := s.repos.Chain.Lock(chainId)
		if err != nil {
			return nil, err
		}
		// 0 行表示并发方已锁定或断开，这里不重复通知
		if affected > 0 {
			zap.L().Info("chain locked", zap.String("chain_id", chainId))
			s.notifyChainMembers(members, chainId, notification_type_enum.CHAIN_LOCKED,
				"换房链已锁定", "全员已确认，可以发起联系方式解锁", nil)
		}
	}

	chain, err = s.repos.Chain.FindByUuid(chainId)
	if err != nil {
		return nil, err
	}
	return s.BuildChainDetail(chain, userId)
}

// DeclineChain 成员拒绝交换链，断开后为其余成员级联重跑匹配
// 已断开的链按无变化处理
func (s *Service) DeclineChain(ctx context.Context, chainId, userId string) (*respond.ChainDetailRespond, error) {
	s.InlineSweep(ctx)

	chain, err := s.repos.Chain.FindByUuid(chainId)
	if err != nil {
		return nil, err
	}
	members, err := s.repos.ChainMember.FindByChainId(chainId)
	if err != nil {
		return nil, err
	}
	if !isMemberUser(members, userId) {
		return nil, errorx.New(errorx.CodeForbidden, "你不是该链成员")
	}

	if chain.Status != chain_status_enum.BROKEN {
		brokenListings, err := s.breakChain(chain, chain_break_reason_enum.DECLINED,
			actor_type_enum.USER, userId)
		if err != nil {
			return nil, err
		}
		s.RerunCascade(ctx, brokenListings)
	}

	chain, err = s.repos.Chain.FindByUuid(chainId)
	if err != nil {
		return nil, err
	}
	return s.BuildChainDetail(chain, userId)
}

// BreakChainByAdmin 管理员强制断开链
func (s *Service) BreakChainByAdmin(ctx context.Context, chainId, adminUserId, reason string) (*respond.ChainDetailRespond, error) {
	if !chain_break_reason_enum.Valid(reason) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "非法断裂原因 %s", reason)
	}
	chain, err := s.repos.Chain.FindByUuid(chainId)
	if err != nil {
		return nil, err
	}

	if chain.Status != chain_status_enum.BROKEN {
		brokenListings, err := s.breakChain(chain, reason, actor_type_enum.ADMIN, adminUserId)
		if err != nil {
			return nil, err
		}
		s.RerunCascade(ctx, brokenListings)
	}

	chain, err = s.repos.Chain.FindByUuid(chainId)
	if err != nil {
		return nil, err
	}
	return s.BuildChainDetail(chain, "")
}

// BreakChainsForListings 强制断开触及这些房源的进行中链（CONFLICT）
// 房源走意向路径成交后调用，返回被波及的成员房源 ID 供级联重跑
func (s *Service) BreakChainsForListings(ctx context.Context, listingIds []string, actor string) []string {
	var affected []string
	seen := map[string]bool{}
	for _, listingId := range listingIds {
		chainIds, err := s.repos.ChainMember.FindChainIdsByListingId(listingId)
		if err != nil {
			zap.L().Warn("find chains for listing failed",
				zap.Error(err), zap.String("listing_id", listingId))
			continue
		}
		chains, err := s.repos.Chain.FindByUuids(chainIds)
		if err != nil {
			zap.L().Warn("load chains failed", zap.Error(err))
			continue
		}
		for i := range chains {
			if chains[i].Status == chain_status_enum.BROKEN {
				continue
			}
			brokenListings, err := s.breakChain(&chains[i],
				chain_break_reason_enum.CONFLICT, actor, "")
			if err != nil {
				zap.L().Warn("break conflicting chain failed",
					zap.Error(err), zap.String("chain_id", chains[i].Uuid))
				continue
			}
			for _, id := range brokenListings {
				if !seen[id] {
					seen[id] = true
					affected = append(affected, id)
				}
			}
		}
	}
	return affected
}

// breakChain 把链置为断裂并通知全员，返回成员房源 ID
// 条件更新影响 0 行（已断开或锁定链对系统过期免疫）返回空，不报错
func (s *Service) breakChain(chain *model.SwapChain, reason, actor, byUserId string) ([]string, error) {
	allowedFrom := []string{chain_status_enum.PENDING, chain_status_enum.LOCKED}
	// 锁定链对系统过期免疫
	if actor == actor_type_enum.SYSTEM && reason == chain_break_reason_enum.EXPIRED {
		allowedFrom = []string{chain_status_enum.PENDING}
	}

	affected, err := s.repos.Chain.MarkBroken(chain.Uuid, reason, actor, byUserId,
		time.Now(), allowedFrom)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	zap.L().Info("chain broken",
		zap.String("chain_id", chain.Uuid),
		zap.String("reason", reason),
		zap.String("actor", actor))

	members, err := s.repos.ChainMember.FindByChainId(chain.Uuid)
	if err != nil {
		zap.L().Warn("load members of broken chain failed", zap.Error(err))
		return nil, nil
	}
	s.notifyChainMembers(members, chain.Uuid, notification_type_enum.CHAIN_BROKEN,
		"换房链已断开",
		fmt.Sprintf("链因 %s 断开，系统会自动为你重新匹配", reason),
		map[string]any{"reason": reason, "actor": actor})

	listingIds := make([]string, 0, len(members))
	for _, m := range members {
		listingIds = append(listingIds, m.ListingId)
	}
	return listingIds, nil
}

// GetMyChains 查询用户参与的全部链
func (s *Service) GetMyChains(userId string) ([]respond.ChainDetailRespond, error) {
	chainIds, err := s.repos.ChainMember.FindChainIdsByUserId(userId)
	if err != nil {
		return nil, err
	}
	chains, err := s.repos.Chain.FindByUuids(chainIds)
	if err != nil {
		return nil, err
	}
	details := make([]respond.ChainDetailRespond, 0, len(chains))
	for i := range chains {
		detail, err := s.BuildChainDetail(&chains[i], userId)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// GetChainDetail 查询链详情，仅成员可见
func (s *Service) GetChainDetail(chainId, userId string) (*respond.ChainDetailRespond, error) {
	chain, err := s.repos.Chain.FindByUuid(chainId)
	if err != nil {
		return nil, err
	}
	if userId != "" {
		members, err := s.repos.ChainMember.FindByChainId(chainId)
		if err != nil {
			return nil, err
		}
		if !isMemberUser(members, userId) {
			return nil, errorx.New(errorx.CodeForbidden, "你不是该链成员")
		}
	}
	return s.BuildChainDetail(chain, userId)
}

// RequestUnlock 发起联系方式解锁，发起人自动批准
// 链必须处于锁定状态；重复发起退化为批准，幂等
func (s *Service) RequestUnlock(ctx context.Context, chainId, userId string) (*respond.UnlockStatusRespond, error) {
	_, members, err := s.lockedChainMember(chainId, userId)
	if err != nil {
		return nil, err
	}

	unlock, err := s.repos.Unlock.FindByChainId(chainId)
	if errorx.IsNotFound(err) {
		unlock = &model.ContactUnlock{
			Uuid:            idgen.NewUnlockId(),
			ChainId:         chainId,
			RequesterUserId: userId,
		}
		err = s.repos.Transaction(func(tx *repository.Repositories) error {
			if err := tx.Unlock.Create(unlock); err != nil {
				return err
			}
			return tx.Unlock.UpsertApproval(&model.ContactUnlockApproval{
				ContactUnlockId: unlock.Uuid,
				ApproverUserId:  userId,
				Approved:        true,
			})
		})
		if err != nil {
			zap.L().Error("create contact unlock error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	} else if err != nil {
		return nil, err
	} else {
		if err := s.repos.Unlock.UpsertApproval(&model.ContactUnlockApproval{
			ContactUnlockId: unlock.Uuid,
			ApproverUserId:  userId,
			Approved:        true,
		}); err != nil {
			return nil, err
		}
	}

	return s.unlockStatus(unlock, members)
}

// ApproveUnlock 批准联系方式解锁
// 必须已有解锁请求，重复批准幂等
func (s *Service) ApproveUnlock(ctx context.Context, chainId, userId string) (*respond.UnlockStatusRespond, error) {
	_, members, err := s.lockedChainMember(chainId, userId)
	if err != nil {
		return nil, err
	}

	unlock, err := s.repos.Unlock.FindByChainId(chainId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "该链尚未发起联系方式解锁")
		}
		return nil, err
	}
	if err := s.repos.Unlock.UpsertApproval(&model.ContactUnlockApproval{
		ContactUnlockId: unlock.Uuid,
		ApproverUserId:  userId,
		Approved:        true,
	}); err != nil {
		return nil, err
	}
	return s.unlockStatus(unlock, members)
}

// lockedChainMember 校验链锁定且调用者是成员
func (s *Service) lockedChainMember(chainId, userId string) (*model.SwapChain, []model.SwapChainMember, error) {
	chain, err := s.repos.Chain.FindByUuid(chainId)
	if err != nil {
		return nil, nil, err
	}
	if chain.Status != chain_status_enum.LOCKED {
		return nil, nil, errorx.New(errorx.CodeInvalidStatus, "链未锁定，不能解锁联系方式")
	}
	members, err := s.repos.ChainMember.FindByChainId(chainId)
	if err != nil {
		return nil, nil, err
	}
	if !isMemberUser(members, userId) {
		return nil, nil, errorx.New(errorx.CodeForbidden, "你不是该链成员")
	}
	return chain, members, nil
}

// unlockStatus 组装解锁进度
func (s *Service) unlockStatus(unlock *model.ContactUnlock, members []model.SwapChainMember) (*respond.UnlockStatusRespond, error) {
	approvals, err := s.repos.Unlock.FindApprovals(unlock.Uuid)
	if err != nil {
		return nil, err
	}
	approvedBy := make([]string, 0, len(approvals))
	approvedSet := map[string]bool{}
	for _, a := range approvals {
		if a.Approved {
			approvedBy = append(approvedBy, a.ApproverUserId)
			approvedSet[a.ApproverUserId] = true
		}
	}
	unlocked := true
	for _, m := range members {
		if !approvedSet[m.UserId] {
			unlocked = false
			break
		}
	}
	return &respond.UnlockStatusRespond{
		UnlockId:      unlock.Uuid,
		ChainId:       unlock.ChainId,
		ApprovedCount: len(approvedBy),
		MemberCount:   len(members),
		Unlocked:      unlocked,
		ApprovedBy:    approvedBy,
	}, nil
}

// BuildChainDetail 组装链详情
// viewerUserId 为成员且全员批准解锁时，才解密并填充成员电话
func (s *Service) BuildChainDetail(chain *model.SwapChain, viewerUserId string) (*respond.ChainDetailRespond, error) {
	members, err := s.repos.ChainMember.FindByChainId(chain.Uuid)
	if err != nil {
		return nil, err
	}

	listingIds := make([]string, 0, len(members))
	userIds := make([]string, 0, len(members))
	for _, m := range members {
		listingIds = append(listingIds, m.ListingId)
		userIds = append(userIds, m.UserId)
	}
	listings, err := s.repos.Listing.FindByUuids(listingIds)
	if err != nil {
		return nil, err
	}
	users, err := s.repos.User.FindByUuids(userIds)
	if err != nil {
		return nil, err
	}
	listingById := make(map[string]*model.SwapListing, len(listings))
	for i := range listings {
		listingById[listings[i].Uuid] = &listings[i]
	}
	userById := make(map[string]*model.UserInfo, len(users))
	for i := range users {
		userById[users[i].Uuid] = &users[i]
	}

	disclose := viewerUserId != "" && isMemberUser(members, viewerUserId) &&
		chain.Status == chain_status_enum.LOCKED && s.contactsUnlocked(chain.Uuid, members)

	detail := &respond.ChainDetailRespond{
		ChainId:      chain.Uuid,
		Type:         chain.Type,
		Status:       chain.Status,
		CycleSize:    chain.CycleSize,
		AvgScore:     chain.AvgScore,
		BrokenReason: chain.BrokenReason,
		BrokenActor:  chain.BrokenActor,
		CreatedAt:    chain.CreatedAt.Format(time.RFC3339),
	}
	if chain.AcceptBy.Valid {
		detail.AcceptBy = chain.AcceptBy.Time.Format(time.RFC3339)
	}
	if chain.BrokenAt.Valid {
		detail.BrokenAt = chain.BrokenAt.Time.Format(time.RFC3339)
	}

	for _, m := range members {
		item := respond.ChainMemberRespond{
			Position:    m.Position,
			ListingId:   m.ListingId,
			UserId:      m.UserId,
			HasAccepted: m.HasAccepted,
		}
		if listing := listingById[m.ListingId]; listing != nil {
			item.City = listing.CurrentCity
			item.HousingType = listing.CurrentType
			item.Rent = listing.CurrentRent
		}
		if user := userById[m.UserId]; user != nil {
			item.FullName = user.FullName
			if disclose && user.Phone != "" {
				phone, err := aes.Decrypt(user.Phone, []byte(s.conf.PhoneKey))
				if err != nil {
					zap.L().Warn("decrypt member phone failed",
						zap.Error(err), zap.String("user_id", user.Uuid))
				} else {
					item.Phone = string(phone)
				}
			}
		}
		detail.Members = append(detail.Members, item)
	}
	return detail, nil
}

// contactsUnlocked 检查链上联系方式是否已获全员批准
func (s *Service) contactsUnlocked(chainId string, members []model.SwapChainMember) bool {
	unlock, err := s.repos.Unlock.FindByChainId(chainId)
	if err != nil {
		return false
	}
	approvals, err := s.repos.Unlock.FindApprovals(unlock.Uuid)
	if err != nil {
		return false
	}
	approvedSet := map[string]bool{}
	for _, a := range approvals {
		if a.Approved {
			approvedSet[a.ApproverUserId] = true
		}
	}
	for _, m := range members {
		if !approvedSet[m.UserId] {
			return false
		}
	}
	return true
}

// notifyChainMembers 给链全员发通知
func (s *Service) notifyChainMembers(members []model.SwapChainMember, chainId, ntype, title, message string, payload map[string]any) {
	if s.sink == nil {
		return
	}
	for _, m := range members {
		s.sink.Publish(notify.Event{
			UserId:  m.UserId,
			ChainId: chainId,
			Type:    ntype,
			Title:   title,
			Message: message,
			Payload: payload,
		})
	}
}

// isMemberUser 检查用户是否为链成员
func isMemberUser(members []model.SwapChainMember, userId string) bool {
	for _, m := range members {
		if m.UserId == userId {
			return true
		}
	}
	return false
}
