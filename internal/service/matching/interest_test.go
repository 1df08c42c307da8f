package matching_test

import (
	"context"
	"testing"
	"time"

	"homeswap_server/internal/model"
	"homeswap_server/pkg/enum/chain/actor_type_enum"
	"homeswap_server/pkg/enum/chain/chain_break_reason_enum"
	"homeswap_server/pkg/enum/chain/chain_status_enum"
	"homeswap_server/pkg/enum/chain/chain_type_enum"
	"homeswap_server/pkg/enum/interest/interest_status_enum"
	"homeswap_server/pkg/enum/listing/listing_status_enum"
	"homeswap_server/pkg/enum/notification/notification_type_enum"
	"homeswap_server/pkg/errorx"
)

// seedInterestPool 目标房源 T（房东 OWNER）+ 两个兼容的请求方 A/B
func seedInterestPool(f *fixture) {
	seedUser(f, "OWNER", "房东")
	seedUser(f, "A", "甲")
	seedUser(f, "B", "乙")
	// T 提供 Lagos 2-bedroom 1200，自己想去很远的地方（对 A/B 不互惠）
	seedListing(f, "T", "OWNER", "Tokyo", "penthouse", 5000, "Lagos", "2-bedroom", 1200)
	seedListing(f, "LA", "A", "Lagos", "2-bedroom", 1500, "Abuja", "studio", 800)
	seedListing(f, "LB", "B", "Lagos", "2-bedroom", 1400, "Kano", "loft", 700)
}

func TestRequestInterest(t *testing.T) {
	f := &fixture{}
	seedInterestPool(f)
	svc, sink := newTestService(f)

	rsp, err := svc.RequestInterest(context.Background(), "A", "T", "LA")
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Status != interest_status_enum.REQUESTED {
		t.Errorf("status = %s, want REQUESTED", rsp.Status)
	}
	if rsp.ExpiresAt == "" {
		t.Error("expected expiry on a fresh request")
	}
	if rsp.RequesterPhone != "" {
		t.Error("phone must not be disclosed at request time")
	}
	// 双方都收到通知
	if got := sink.countType(notification_type_enum.INTEREST_REQUESTED); got != 2 {
		t.Errorf("INTEREST_REQUESTED events = %d, want 2", got)
	}
	if len(f.interests) != 1 {
		t.Fatalf("interests = %d, want 1", len(f.interests))
	}
}

func TestRequestInterestDefaultListing(t *testing.T) {
	f := &fixture{}
	seedInterestPool(f)
	svc, _ := newTestService(f)
	ctx := context.Background()

	// 不指定请求方房源时取最新在挂房源；同键复用旧记录
	if _, err := svc.RequestInterest(ctx, "A", "T", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RequestInterest(ctx, "A", "T", "LA"); err != nil {
		t.Fatal(err)
	}
	if len(f.interests) != 1 {
		t.Errorf("interests = %d, want 1 (same pair reuses the record)", len(f.interests))
	}
	if f.interests[0].RequesterListingId != "LA" {
		t.Errorf("requester listing = %s, want LA", f.interests[0].RequesterListingId)
	}
}

func TestRequestInterestGuards(t *testing.T) {
	f := &fixture{}
	seedInterestPool(f)
	svc, _ := newTestService(f)
	ctx := context.Background()

	// 自己的房源
	_, err := svc.RequestInterest(ctx, "OWNER", "T", "")
	assertCode(t, err, errorx.CodeInvalidParam)

	// 别人的房源当请求方
	_, err = svc.RequestInterest(ctx, "A", "T", "LB")
	assertCode(t, err, errorx.CodeForbidden)

	// 需求不兼容：A 的预算远低于 T 的租金
	f.listings[1].MaxBudget = 100 // LA
	_, err = svc.RequestInterest(ctx, "A", "T", "LA")
	assertCode(t, err, errorx.CodeInvalidStatus)

	// 目标房源不在挂牌中
	f.listings[0].Status = listing_status_enum.EXPIRED // T
	_, err = svc.RequestInterest(ctx, "B", "T", "LB")
	assertCode(t, err, errorx.CodeInvalidStatus)
}

func TestApproveInterest(t *testing.T) {
	f := &fixture{}
	seedInterestPool(f)
	svc, sink := newTestService(f)
	ctx := context.Background()

	rsp, err := svc.RequestInterest(ctx, "A", "T", "LA")
	if err != nil {
		t.Fatal(err)
	}

	// 只有目标房源所有者能批准
	_, err = svc.ApproveInterest(ctx, "A", rsp.InterestId)
	assertCode(t, err, errorx.CodeForbidden)

	approved, err := svc.ApproveInterest(ctx, "OWNER", rsp.InterestId)
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != interest_status_enum.CONTACT_APPROVED {
		t.Errorf("status = %s, want CONTACT_APPROVED", approved.Status)
	}
	if approved.RespondedAt == "" {
		t.Error("expected responded timestamp")
	}
	if got := sink.countType(notification_type_enum.INTEREST_APPROVED); got != 1 {
		t.Errorf("INTEREST_APPROVED events = %d, want 1", got)
	}

	// 重复批准幂等
	again, err := svc.ApproveInterest(ctx, "OWNER", rsp.InterestId)
	if err != nil {
		t.Fatal(err)
	}
	if again.Status != interest_status_enum.CONTACT_APPROVED {
		t.Errorf("repeat approve status = %s, want CONTACT_APPROVED", again.Status)
	}
}

func TestDeclineThenReviveInterest(t *testing.T) {
	f := &fixture{}
	seedInterestPool(f)
	svc, _ := newTestService(f)
	ctx := context.Background()

	rsp, err := svc.RequestInterest(ctx, "A", "T", "LA")
	if err != nil {
		t.Fatal(err)
	}
	declined, err := svc.DeclineInterest(ctx, "OWNER", rsp.InterestId)
	if err != nil {
		t.Fatal(err)
	}
	if declined.Status != interest_status_enum.DECLINED {
		t.Fatalf("status = %s, want DECLINED", declined.Status)
	}

	// 拒绝后不能再批准
	_, err = svc.ApproveInterest(ctx, "OWNER", rsp.InterestId)
	assertCode(t, err, errorx.CodeInvalidStatus)

	// 重新发起复活同一条记录：回到 REQUESTED 并清掉历史时间戳
	revived, err := svc.RequestInterest(ctx, "A", "T", "LA")
	if err != nil {
		t.Fatal(err)
	}
	if revived.InterestId != rsp.InterestId {
		t.Errorf("revived id = %s, want %s", revived.InterestId, rsp.InterestId)
	}
	if revived.Status != interest_status_enum.REQUESTED {
		t.Errorf("revived status = %s, want REQUESTED", revived.Status)
	}
	if revived.RespondedAt != "" || revived.ReleasedAt != "" {
		t.Error("revival must clear historical timestamps")
	}
}

func TestConfirmRenter(t *testing.T) {
	f := &fixture{}
	seedInterestPool(f)
	svc, sink := newTestService(f)
	ctx := context.Background()

	// A/B 各有一条指向 T 的意向，外加一条触及 LA 的待确认链
	r1, err := svc.RequestInterest(ctx, "A", "T", "LA")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RequestInterest(ctx, "B", "T", "LB"); err != nil {
		t.Fatal(err)
	}
	f.chains = append(f.chains, &model.SwapChain{
		Uuid: "C1", CycleSize: 2, AvgScore: 70,
		Status: chain_status_enum.PENDING, Type: chain_type_enum.DIRECT,
		CycleHash: "LA-LX",
	})
	f.chains[0].AcceptBy.Time = time.Now().Add(time.Hour)
	f.chains[0].AcceptBy.Valid = true
	seedUser(f, "X", "丙")
	seedListing(f, "LX", "X", "Abuja", "studio", 1000, "Enugu", "flat", 500)
	f.members = append(f.members,
		&model.SwapChainMember{ChainId: "C1", ListingId: "LA", UserId: "A", Position: 0},
		&model.SwapChainMember{ChainId: "C1", ListingId: "LX", UserId: "X", Position: 1},
	)

	confirmed, err := svc.ConfirmRenter(ctx, "OWNER", r1.InterestId)
	if err != nil {
		t.Fatal(err)
	}
	if confirmed.Status != interest_status_enum.CONFIRMED_RENTER {
		t.Errorf("status = %s, want CONFIRMED_RENTER", confirmed.Status)
	}
	if confirmed.ConfirmedAt == "" {
		t.Error("expected confirmed timestamp")
	}
	// 成交的记录补齐响应时间并摘掉过期时间，不再参与过期清扫
	if !f.interests[0].RespondedAt.Valid {
		t.Error("expected responded timestamp on the confirmed interest")
	}
	if f.interests[0].ExpiresAt.Valid {
		t.Error("confirmed interest must not keep an expiry")
	}

	// 双方房源成交下架
	for _, id := range []string{"T", "LA"} {
		for _, l := range f.listings {
			if l.Uuid != id {
				continue
			}
			if l.Status != listing_status_enum.MATCHED {
				t.Errorf("listing %s status = %s, want MATCHED", id, l.Status)
			}
			if l.MatchedInterestId != r1.InterestId {
				t.Errorf("listing %s matched interest = %s, want %s", id, l.MatchedInterestId, r1.InterestId)
			}
		}
	}

	// B 的意向被释放
	for _, it := range f.interests {
		if it.RequesterUserId != "B" {
			continue
		}
		if it.Status != interest_status_enum.RELEASED {
			t.Errorf("competing interest status = %s, want RELEASED", it.Status)
		}
		if !it.ReleasedAt.Valid || !it.RespondedAt.Valid {
			t.Error("expected released and responded timestamps")
		}
		if it.ExpiresAt.Valid {
			t.Error("released interest must not keep an expiry")
		}
	}

	// 触及 LA 的链被冲突断开
	chain := f.chains[0]
	if chain.Status != chain_status_enum.BROKEN ||
		chain.BrokenReason != chain_break_reason_enum.CONFLICT ||
		chain.BrokenActor != actor_type_enum.SYSTEM {
		t.Errorf("chain = %s/%s/%s, want BROKEN/CONFLICT/SYSTEM",
			chain.Status, chain.BrokenReason, chain.BrokenActor)
	}

	if got := sink.countType(notification_type_enum.RENTER_CONFIRMED); got != 2 {
		t.Errorf("RENTER_CONFIRMED events = %d, want 2", got)
	}
	if got := sink.countType(notification_type_enum.REQUEST_RELEASED); got != 1 {
		t.Errorf("REQUEST_RELEASED events = %d, want 1", got)
	}

	// 终态后不能再确认
	_, err = svc.ConfirmRenter(ctx, "OWNER", r1.InterestId)
	assertCode(t, err, errorx.CodeInvalidStatus)
}

func TestConfirmRenterFailureLeavesNoPartialState(t *testing.T) {
	f := &fixture{}
	seedInterestPool(f)
	svc, sink := newTestService(f)
	ctx := context.Background()

	r1, err := svc.RequestInterest(ctx, "A", "T", "LA")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RequestInterest(ctx, "B", "T", "LB"); err != nil {
		t.Fatal(err)
	}

	// 意向和房源都已流转之后，释放查询才出故障
	f.failOpenTouching = errorx.New(errorx.CodeDBError, "释放查询故障")
	if _, err := svc.ConfirmRenter(ctx, "OWNER", r1.InterestId); err == nil {
		t.Fatal("expected confirm to fail")
	}

	// 事务整体回滚：不能出现一边成交一边在挂的中间状态
	for _, l := range f.listings {
		if l.Status != listing_status_enum.ACTIVE {
			t.Errorf("listing %s status = %s, want ACTIVE", l.Uuid, l.Status)
		}
		if l.MatchedInterestId != "" {
			t.Errorf("listing %s must not carry a matched interest", l.Uuid)
		}
	}
	for _, it := range f.interests {
		if it.Status != interest_status_enum.REQUESTED {
			t.Errorf("interest %s status = %s, want REQUESTED", it.Uuid, it.Status)
		}
	}
	if got := sink.countType(notification_type_enum.RENTER_CONFIRMED); got != 0 {
		t.Errorf("RENTER_CONFIRMED events = %d, want 0 after rollback", got)
	}

	// 故障恢复后重试成交
	f.failOpenTouching = nil
	confirmed, err := svc.ConfirmRenter(ctx, "OWNER", r1.InterestId)
	if err != nil {
		t.Fatal(err)
	}
	if confirmed.Status != interest_status_enum.CONFIRMED_RENTER {
		t.Errorf("retry status = %s, want CONFIRMED_RENTER", confirmed.Status)
	}
}

func TestListInterests(t *testing.T) {
	f := &fixture{}
	seedInterestPool(f)
	svc, _ := newTestService(f)
	ctx := context.Background()

	r1, err := svc.RequestInterest(ctx, "A", "T", "LA")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RequestInterest(ctx, "B", "T", "LB"); err != nil {
		t.Fatal(err)
	}

	incoming, err := svc.ListIncomingInterests("OWNER")
	if err != nil {
		t.Fatal(err)
	}
	if len(incoming) != 2 {
		t.Errorf("incoming = %d, want 2", len(incoming))
	}

	outgoing, err := svc.ListOutgoingInterests("A")
	if err != nil {
		t.Fatal(err)
	}
	if len(outgoing) != 1 || outgoing[0].InterestId != r1.InterestId {
		t.Errorf("outgoing = %+v, want single %s", outgoing, r1.InterestId)
	}
}
