package matching_test

import (
	"context"
	"testing"
	"time"

	"homeswap_server/internal/config"
	"homeswap_server/internal/model"
	"homeswap_server/internal/service/matching"
	"homeswap_server/internal/service/notify"
	"homeswap_server/pkg/enum/chain/actor_type_enum"
	"homeswap_server/pkg/enum/chain/chain_break_reason_enum"
	"homeswap_server/pkg/enum/chain/chain_status_enum"
	"homeswap_server/pkg/enum/chain/chain_type_enum"
	"homeswap_server/pkg/enum/listing/listing_status_enum"
	"homeswap_server/pkg/enum/match/match_scenario_enum"
	"homeswap_server/pkg/enum/notification/notification_type_enum"
	"homeswap_server/pkg/errorx"
)

// captureSink 同步收集通知事件，替代异步 Worker Pool
type captureSink struct {
	events []notify.Event
}

func (c *captureSink) Publish(event notify.Event) {
	c.events = append(c.events, event)
}

func (c *captureSink) countType(ntype string) int {
	n := 0
	for _, e := range c.events {
		if e.Type == ntype {
			n++
		}
	}
	return n
}

func newTestService(f *fixture) (*matching.Service, *captureSink) {
	conf := &config.Config{}
	conf.MatchingConfig.Normalize()
	sink := &captureSink{}
	return matching.NewMatchingService(newRepos(f), sink, nil, nil, conf), sink
}

func seedUser(f *fixture, uuid, name string) {
	f.users = append(f.users, &model.UserInfo{Uuid: uuid, FullName: name, Email: uuid + "@test.local"})
}

// seedListing 挂一条在挂房源，挂牌过期时间在未来
func seedListing(f *fixture, id, userId, desiredCity, desiredType string, maxBudget int,
	currentCity, currentType string, currentRent int) {
	f.listings = append(f.listings, &model.SwapListing{
		Uuid: id, UserId: userId,
		DesiredCity: desiredCity, DesiredType: desiredType, MaxBudget: maxBudget,
		CurrentCity: currentCity, CurrentType: currentType, CurrentRent: currentRent,
		AvailableOn: time.Now().AddDate(0, 1, 0),
		Status:      listing_status_enum.ACTIVE,
		ExpiresAt:   time.Now().AddDate(0, 0, 30),
	})
}

// seedDirectPair 一对互惠房源 L1(U1) ↔ L2(U2)
func seedDirectPair(f *fixture) {
	seedUser(f, "U1", "张三")
	seedUser(f, "U2", "李四")
	seedListing(f, "L1", "U1", "Lagos", "2-bedroom", 1500, "Abuja", "studio", 800)
	seedListing(f, "L2", "U2", "Abuja", "studio", 1000, "Lagos", "2-bedroom", 1200)
}

func assertCode(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", want)
	}
	if got := errorx.GetCode(err); got != want {
		t.Fatalf("error code = %d, want %d (err: %v)", got, want, err)
	}
}

func TestRunForListingDirectPair(t *testing.T) {
	f := &fixture{}
	seedDirectPair(f)
	svc, sink := newTestService(f)

	rsp, err := svc.RunForListing(context.Background(), "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	if !rsp.Found || rsp.Badge != matching.BadgeDirectSwap {
		t.Errorf("Found=%v Badge=%s, want true/DIRECT_SWAP", rsp.Found, rsp.Badge)
	}
	if rsp.MatchScenario != match_scenario_enum.ONE_TO_ONE {
		t.Errorf("scenario = %s, want ONE_TO_ONE", rsp.MatchScenario)
	}
	if rsp.ChainStatus != chain_status_enum.PENDING {
		t.Errorf("chain status = %s, want PENDING", rsp.ChainStatus)
	}
	if len(f.chains) != 1 || len(f.members) != 2 {
		t.Fatalf("chains=%d members=%d, want 1/2", len(f.chains), len(f.members))
	}
	chain := f.chains[0]
	if chain.Type != chain_type_enum.DIRECT || chain.CycleSize != 2 {
		t.Errorf("chain type=%s size=%d, want DIRECT/2", chain.Type, chain.CycleSize)
	}
	if !chain.AcceptBy.Valid || !chain.AcceptBy.Time.After(time.Now()) {
		t.Error("expected accept deadline in the future")
	}
	// 全员收到待确认通知
	if got := sink.countType(notification_type_enum.CHAIN_PENDING); got != 2 {
		t.Errorf("CHAIN_PENDING events = %d, want 2", got)
	}
	// 整张图的打分边都落库，包括对方指回来的边
	for _, pair := range [][2]string{{"L1", "L2"}, {"L2", "L1"}} {
		found := false
		for _, c := range f.candidates {
			if c.FromListingId == pair[0] && c.ToListingId == pair[1] {
				found = true
			}
		}
		if !found {
			t.Errorf("expected persisted edge %s->%s", pair[0], pair[1])
		}
	}
}

func TestRunForListingIdempotent(t *testing.T) {
	f := &fixture{}
	seedDirectPair(f)
	svc, _ := newTestService(f)
	ctx := context.Background()

	first, err := svc.RunForListing(ctx, "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	// 对方再跑：命中同一条链，不重复创建
	second, err := svc.RunForListing(ctx, "L2", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if second.Badge != matching.BadgeExistingChain {
		t.Errorf("Badge = %s, want EXISTING_CHAIN", second.Badge)
	}
	if second.ChainId != first.ChainId {
		t.Errorf("chain id = %s, want %s", second.ChainId, first.ChainId)
	}
	if len(f.chains) != 1 {
		t.Errorf("chains = %d, want 1", len(f.chains))
	}
}

func TestRunForUserCircular(t *testing.T) {
	f := &fixture{}
	seedUser(f, "U1", "张三")
	seedUser(f, "U2", "李四")
	seedUser(f, "U3", "王五")
	// 单向环：L1 想要 L2 的房，L2 想要 L3 的，L3 想要 L1 的
	seedListing(f, "L1", "U1", "Lagos", "loft", 2000, "Abuja", "studio", 900)
	seedListing(f, "L2", "U2", "Kano", "villa", 2000, "Lagos", "loft", 1100)
	seedListing(f, "L3", "U3", "Abuja", "studio", 2000, "Kano", "villa", 1300)
	svc, _ := newTestService(f)

	rsp, err := svc.RunForUser(context.Background(), "U1")
	if err != nil {
		t.Fatal(err)
	}
	if !rsp.Found || rsp.Badge != matching.BadgeCircularSwap {
		t.Fatalf("Found=%v Badge=%s, want true/CIRCULAR_SWAP", rsp.Found, rsp.Badge)
	}
	if len(f.chains) != 1 || f.chains[0].CycleSize != 3 {
		t.Fatalf("expected one 3-member chain, got %d chains", len(f.chains))
	}
	if f.chains[0].Type != chain_type_enum.CIRCULAR {
		t.Errorf("chain type = %s, want CIRCULAR", f.chains[0].Type)
	}
	if rsp.Chain == nil || len(rsp.Chain.Members) != 3 {
		t.Error("expected chain detail with 3 members")
	}
}

func TestRunForListingOneWayRecommendations(t *testing.T) {
	f := &fixture{}
	seedUser(f, "U1", "张三")
	seedUser(f, "U2", "李四")
	// L1 → L2 有边，反向不兼容：只出单向推荐
	seedListing(f, "L1", "U1", "Lagos", "2-bedroom", 1500, "Abuja", "studio", 800)
	seedListing(f, "L2", "U2", "Paris", "villa", 100, "Lagos", "2-bedroom", 1200)
	svc, _ := newTestService(f)

	rsp, err := svc.RunForListing(context.Background(), "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Found {
		t.Error("expected no chain")
	}
	if rsp.MatchScenario != match_scenario_enum.ONE_TO_MANY {
		t.Errorf("scenario = %s, want ONE_TO_MANY", rsp.MatchScenario)
	}
	if len(rsp.Recommendations) != 1 || rsp.Recommendations[0].ListingId != "L2" {
		t.Fatalf("recommendations = %+v, want single L2", rsp.Recommendations)
	}
	if rsp.Recommendations[0].Mutual {
		t.Error("one-way candidate must not be mutual")
	}
	if len(f.chains) != 0 {
		t.Errorf("chains = %d, want 0", len(f.chains))
	}
}

func TestRunForListingIndependent(t *testing.T) {
	f := &fixture{}
	seedUser(f, "U1", "张三")
	seedListing(f, "L1", "U1", "Lagos", "2-bedroom", 1500, "Abuja", "studio", 800)
	svc, _ := newTestService(f)

	rsp, err := svc.RunForListing(context.Background(), "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Found || rsp.MatchScenario != match_scenario_enum.INDEPENDENT {
		t.Errorf("Found=%v scenario=%s, want false/INDEPENDENT", rsp.Found, rsp.MatchScenario)
	}
}

func TestRunForListingAccessControl(t *testing.T) {
	f := &fixture{}
	seedDirectPair(f)
	svc, _ := newTestService(f)
	ctx := context.Background()

	_, err := svc.RunForListing(ctx, "L1", "U2")
	assertCode(t, err, errorx.CodeForbidden)

	f.listings[0].Status = listing_status_enum.MATCHED
	_, err = svc.RunForListing(ctx, "L1", "U1")
	assertCode(t, err, errorx.CodeInvalidStatus)
}

func TestRunForUserWithoutListing(t *testing.T) {
	f := &fixture{}
	seedUser(f, "U1", "张三")
	svc, _ := newTestService(f)

	_, err := svc.RunForUser(context.Background(), "U1")
	assertCode(t, err, errorx.CodeInvalidStatus)
}

func TestAcceptChainLocksWhenAllAccept(t *testing.T) {
	f := &fixture{}
	seedDirectPair(f)
	svc, sink := newTestService(f)
	ctx := context.Background()

	rsp, err := svc.RunForListing(ctx, "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	chainId := rsp.ChainId

	detail, err := svc.AcceptChain(ctx, chainId, "U1")
	if err != nil {
		t.Fatal(err)
	}
	if detail.Status != chain_status_enum.PENDING {
		t.Errorf("status after first accept = %s, want PENDING", detail.Status)
	}

	detail, err = svc.AcceptChain(ctx, chainId, "U2")
	if err != nil {
		t.Fatal(err)
	}
	if detail.Status != chain_status_enum.LOCKED {
		t.Errorf("status after all accept = %s, want LOCKED", detail.Status)
	}
	if f.chains[0].AcceptBy.Valid {
		t.Error("accept deadline must be cleared on lock")
	}
	if got := sink.countType(notification_type_enum.CHAIN_LOCKED); got != 2 {
		t.Errorf("CHAIN_LOCKED events = %d, want 2", got)
	}

	// 锁定后不再接受确认
	if _, err := svc.AcceptChain(ctx, chainId, "U1"); errorx.GetCode(err) != errorx.CodeInvalidStatus {
		t.Errorf("expected CodeInvalidStatus accepting a locked chain, got %v", err)
	}
}

func TestAcceptChainNonMember(t *testing.T) {
	f := &fixture{}
	seedDirectPair(f)
	seedUser(f, "U9", "路人")
	svc, _ := newTestService(f)
	ctx := context.Background()

	rsp, err := svc.RunForListing(ctx, "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.AcceptChain(ctx, rsp.ChainId, "U9")
	assertCode(t, err, errorx.CodeForbidden)
}

func TestAcceptChainAfterDeadline(t *testing.T) {
	f := &fixture{}
	seedDirectPair(f)
	svc, _ := newTestService(f)
	ctx := context.Background()

	rsp, err := svc.RunForListing(ctx, "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	// 把截止时间拨到过去
	f.chains[0].AcceptBy.Time = time.Now().Add(-time.Hour)

	_, err = svc.AcceptChain(ctx, rsp.ChainId, "U1")
	assertCode(t, err, errorx.CodeInvalidStatus)

	chain := f.chains[0]
	if chain.Status != chain_status_enum.BROKEN {
		t.Fatalf("chain status = %s, want BROKEN", chain.Status)
	}
	if chain.BrokenReason != chain_break_reason_enum.EXPIRED ||
		chain.BrokenActor != actor_type_enum.SYSTEM {
		t.Errorf("broken reason/actor = %s/%s, want EXPIRED/SYSTEM",
			chain.BrokenReason, chain.BrokenActor)
	}
	// 级联重跑命中 BROKEN 链的哈希，不会复活新链
	if len(f.chains) != 1 {
		t.Errorf("chains = %d, want 1", len(f.chains))
	}
}

func TestDeclineChain(t *testing.T) {
	f := &fixture{}
	seedDirectPair(f)
	svc, sink := newTestService(f)
	ctx := context.Background()

	rsp, err := svc.RunForListing(ctx, "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	detail, err := svc.DeclineChain(ctx, rsp.ChainId, "U2")
	if err != nil {
		t.Fatal(err)
	}
	if detail.Status != chain_status_enum.BROKEN {
		t.Fatalf("status = %s, want BROKEN", detail.Status)
	}
	chain := f.chains[0]
	if chain.BrokenReason != chain_break_reason_enum.DECLINED ||
		chain.BrokenActor != actor_type_enum.USER ||
		chain.BrokenByUserId != "U2" {
		t.Errorf("broken by = %s/%s/%s, want DECLINED/USER/U2",
			chain.BrokenReason, chain.BrokenActor, chain.BrokenByUserId)
	}
	if got := sink.countType(notification_type_enum.CHAIN_BROKEN); got != 2 {
		t.Errorf("CHAIN_BROKEN events = %d, want 2", got)
	}

	// 已断开的链重复拒绝按无变化处理
	if _, err := svc.DeclineChain(ctx, rsp.ChainId, "U1"); err != nil {
		t.Errorf("decline on broken chain should be a no-op, got %v", err)
	}
}

func TestBreakChainByAdmin(t *testing.T) {
	f := &fixture{}
	seedDirectPair(f)
	seedUser(f, "ADMIN", "管理员")
	svc, _ := newTestService(f)
	ctx := context.Background()

	rsp, err := svc.RunForListing(ctx, "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.BreakChainByAdmin(ctx, rsp.ChainId, "ADMIN", "NOT_A_REASON")
	assertCode(t, err, errorx.CodeInvalidParam)

	detail, err := svc.BreakChainByAdmin(ctx, rsp.ChainId, "ADMIN", chain_break_reason_enum.ADMIN_FORCE)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Status != chain_status_enum.BROKEN {
		t.Errorf("status = %s, want BROKEN", detail.Status)
	}
	if f.chains[0].BrokenActor != actor_type_enum.ADMIN {
		t.Errorf("actor = %s, want ADMIN", f.chains[0].BrokenActor)
	}
}

func TestGetChainDetailMemberOnly(t *testing.T) {
	f := &fixture{}
	seedDirectPair(f)
	seedUser(f, "U9", "路人")
	svc, _ := newTestService(f)
	ctx := context.Background()

	rsp, err := svc.RunForListing(ctx, "L1", "U1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetChainDetail(rsp.ChainId, "U9"); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Errorf("expected CodeForbidden for non-member, got %v", err)
	}

	detail, err := svc.GetChainDetail(rsp.ChainId, "U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(detail.Members))
	}
	for _, m := range detail.Members {
		if m.Phone != "" {
			t.Error("phone must not be disclosed before unlock approval")
		}
	}

	chains, err := svc.GetMyChains("U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(chains) != 1 {
		t.Errorf("my chains = %d, want 1", len(chains))
	}
}

func seedLockedChain(f *fixture) {
	seedDirectPair(f)
	f.chains = append(f.chains, &model.SwapChain{
		Uuid: "C1", CycleSize: 2, AvgScore: 80,
		Status: chain_status_enum.LOCKED, Type: chain_type_enum.DIRECT,
		CycleHash: "L1-L2",
	})
	f.members = append(f.members,
		&model.SwapChainMember{ChainId: "C1", ListingId: "L1", UserId: "U1", Position: 0, HasAccepted: true},
		&model.SwapChainMember{ChainId: "C1", ListingId: "L2", UserId: "U2", Position: 1, HasAccepted: true},
	)
}

func TestUnlockFlow(t *testing.T) {
	f := &fixture{}
	seedLockedChain(f)
	svc, _ := newTestService(f)
	ctx := context.Background()

	// 还没人发起时不能直接批准
	_, err := svc.ApproveUnlock(ctx, "C1", "U2")
	assertCode(t, err, errorx.CodeNotFound)

	// 发起人自动批准
	status, err := svc.RequestUnlock(ctx, "C1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	if status.ApprovedCount != 1 || status.MemberCount != 2 || status.Unlocked {
		t.Errorf("status = %+v, want 1/2 not unlocked", status)
	}

	// 重复发起退化为批准，幂等
	status, err = svc.RequestUnlock(ctx, "C1", "U1")
	if err != nil {
		t.Fatal(err)
	}
	if status.ApprovedCount != 1 || len(f.unlocks) != 1 {
		t.Errorf("repeat request must stay idempotent: %+v, unlocks=%d", status, len(f.unlocks))
	}

	status, err = svc.ApproveUnlock(ctx, "C1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if !status.Unlocked || status.ApprovedCount != 2 {
		t.Errorf("status = %+v, want unlocked 2/2", status)
	}
}

func TestUnlockRequiresLockedChain(t *testing.T) {
	f := &fixture{}
	seedLockedChain(f)
	f.chains[0].Status = chain_status_enum.PENDING
	svc, _ := newTestService(f)

	_, err := svc.RequestUnlock(context.Background(), "C1", "U1")
	assertCode(t, err, errorx.CodeInvalidStatus)
}

func TestRerunChainMembersByAdmin(t *testing.T) {
	f := &fixture{}
	seedLockedChain(f)
	f.chains[0].Status = chain_status_enum.BROKEN
	svc, _ := newTestService(f)
	ctx := context.Background()

	listingIds, err := svc.RerunChainMembersByAdmin(ctx, "C1")
	if err != nil {
		t.Fatal(err)
	}
	if len(listingIds) != 2 {
		t.Fatalf("listing ids = %v, want 2 entries", listingIds)
	}
	// 同组房源的哈希命中已断开的链，重跑不会复活新链
	if len(f.chains) != 1 {
		t.Errorf("chains = %d, want 1 after rerun", len(f.chains))
	}

	_, err = svc.RerunChainMembersByAdmin(ctx, "NOPE")
	assertCode(t, err, errorx.CodeNotFound)
}
