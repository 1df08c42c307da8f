package matching_test

// 内存版 Repository 实现，供引擎级测试使用
// 语义对齐真实实现：未命中返回 CodeNotFound，唯一键冲突返回 gorm.ErrDuplicatedKey，
// 条件更新返回影响行数

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"homeswap_server/internal/dao/mysql/repository"
	"homeswap_server/internal/model"
	"homeswap_server/pkg/enum/chain/chain_status_enum"
	"homeswap_server/pkg/enum/interest/interest_status_enum"
	"homeswap_server/pkg/enum/listing/listing_status_enum"
	"homeswap_server/pkg/errorx"
)

type fixture struct {
	users      []*model.UserInfo
	listings   []*model.SwapListing
	candidates []*model.MatchCandidate
	chains     []*model.SwapChain
	members    []*model.SwapChainMember
	interests  []*model.ListingInterest
	unlocks    []*model.ContactUnlock
	approvals  []*model.ContactUnlockApproval
	notices    []*model.Notification

	failOpenTouching error // 注入 FindOpenTouching 故障，模拟事务中途失败
}

// snapshot 深拷贝全部内存数据，配合 restore 实现事务回滚
func (f *fixture) snapshot() *fixture {
	snap := &fixture{}
	for _, v := range f.users {
		cp := *v
		snap.users = append(snap.users, &cp)
	}
	for _, v := range f.listings {
		cp := *v
		snap.listings = append(snap.listings, &cp)
	}
	for _, v := range f.candidates {
		cp := *v
		snap.candidates = append(snap.candidates, &cp)
	}
	for _, v := range f.chains {
		cp := *v
		snap.chains = append(snap.chains, &cp)
	}
	for _, v := range f.members {
		cp := *v
		snap.members = append(snap.members, &cp)
	}
	for _, v := range f.interests {
		cp := *v
		snap.interests = append(snap.interests, &cp)
	}
	for _, v := range f.unlocks {
		cp := *v
		snap.unlocks = append(snap.unlocks, &cp)
	}
	for _, v := range f.approvals {
		cp := *v
		snap.approvals = append(snap.approvals, &cp)
	}
	for _, v := range f.notices {
		cp := *v
		snap.notices = append(snap.notices, &cp)
	}
	return snap
}

func (f *fixture) restore(snap *fixture) {
	f.users = snap.users
	f.listings = snap.listings
	f.candidates = snap.candidates
	f.chains = snap.chains
	f.members = snap.members
	f.interests = snap.interests
	f.unlocks = snap.unlocks
	f.approvals = snap.approvals
	f.notices = snap.notices
}

func newRepos(f *fixture) *repository.Repositories {
	r := &repository.Repositories{
		User:         &fakeUserRepo{f},
		Listing:      &fakeListingRepo{f},
		Candidate:    &fakeCandidateRepo{f},
		Chain:        &fakeChainRepo{f},
		ChainMember:  &fakeChainMemberRepo{f},
		Interest:     &fakeInterestRepo{f},
		Unlock:       &fakeUnlockRepo{f},
		Notification: &fakeNotificationRepo{f},
	}
	// 内存版事务：失败时整体回退到进入事务前的快照
	r.TxRunner = func(fn func(txRepos *repository.Repositories) error) error {
		snap := f.snapshot()
		if err := fn(r); err != nil {
			f.restore(snap)
			return err
		}
		return nil
	}
	return r
}

func notFound(msg string) error {
	return errorx.New(errorx.CodeNotFound, msg)
}

// ==================== User ====================

type fakeUserRepo struct{ f *fixture }

func (r *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	for _, u := range r.f.users {
		if u.Uuid == uuid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user not found")
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.UserInfo, error) {
	for _, u := range r.f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user not found")
}

func (r *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	want := toSet(uuids)
	var out []model.UserInfo
	for _, u := range r.f.users {
		if want[u.Uuid] {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(user *model.UserInfo) error {
	cp := *user
	r.f.users = append(r.f.users, &cp)
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(uuid string, at time.Time) error {
	for _, u := range r.f.users {
		if u.Uuid == uuid {
			u.LastLoginAt.Time, u.LastLoginAt.Valid = at, true
		}
	}
	return nil
}

func (r *fakeUserRepo) AddPenaltyPoints(uuid string, delta int) error {
	for _, u := range r.f.users {
		if u.Uuid == uuid {
			u.PenaltyPoints += delta
		}
	}
	return nil
}

// ==================== Listing ====================

type fakeListingRepo struct{ f *fixture }

func (r *fakeListingRepo) stored(uuid string) *model.SwapListing {
	for _, l := range r.f.listings {
		if l.Uuid == uuid {
			return l
		}
	}
	return nil
}

func (r *fakeListingRepo) FindByUuid(uuid string) (*model.SwapListing, error) {
	if l := r.stored(uuid); l != nil {
		cp := *l
		return &cp, nil
	}
	return nil, notFound("listing not found")
}

func (r *fakeListingRepo) FindByUuids(uuids []string) ([]model.SwapListing, error) {
	want := toSet(uuids)
	var out []model.SwapListing
	for _, l := range r.f.listings {
		if want[l.Uuid] {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) FindByUserId(userId string) ([]model.SwapListing, error) {
	var out []model.SwapListing
	for i := len(r.f.listings) - 1; i >= 0; i-- {
		if r.f.listings[i].UserId == userId {
			out = append(out, *r.f.listings[i])
		}
	}
	return out, nil
}

func (r *fakeListingRepo) FindActiveByUserId(userId string) ([]model.SwapListing, error) {
	var out []model.SwapListing
	for i := len(r.f.listings) - 1; i >= 0; i-- {
		l := r.f.listings[i]
		if l.UserId == userId && l.Status == listing_status_enum.ACTIVE {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) FindAllActive() ([]model.SwapListing, error) {
	var out []model.SwapListing
	for _, l := range r.f.listings {
		if l.Status == listing_status_enum.ACTIVE {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) FindExpired(before time.Time, limit int) ([]model.SwapListing, error) {
	var out []model.SwapListing
	for _, l := range r.f.listings {
		if l.Status == listing_status_enum.ACTIVE && l.ExpiresAt.Before(before) {
			out = append(out, *l)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeListingRepo) Create(listing *model.SwapListing) error {
	cp := *listing
	r.f.listings = append(r.f.listings, &cp)
	return nil
}

func (r *fakeListingRepo) Update(listing *model.SwapListing) error {
	if l := r.stored(listing.Uuid); l != nil {
		*l = *listing
		return nil
	}
	return notFound("listing not found")
}

func (r *fakeListingRepo) UpdateStatusIf(uuid, from, to string) (int64, error) {
	if l := r.stored(uuid); l != nil && l.Status == from {
		l.Status = to
		return 1, nil
	}
	return 0, nil
}

func (r *fakeListingRepo) Renew(uuid, userId string, expiresAt time.Time) (int64, error) {
	l := r.stored(uuid)
	if l == nil || l.UserId != userId || l.Status == listing_status_enum.MATCHED {
		return 0, nil
	}
	l.Status = listing_status_enum.ACTIVE
	l.ExpiresAt = expiresAt
	return 1, nil
}

func (r *fakeListingRepo) MarkMatched(uuids []string, interestId string, at time.Time) error {
	want := toSet(uuids)
	for _, l := range r.f.listings {
		if want[l.Uuid] {
			l.Status = listing_status_enum.MATCHED
			l.MatchedInterestId = interestId
			l.MatchedAt.Time, l.MatchedAt.Valid = at, true
		}
	}
	return nil
}

// ==================== Candidate ====================

type fakeCandidateRepo struct{ f *fixture }

func (r *fakeCandidateRepo) ReplaceForListing(fromListingId string, rows []model.MatchCandidate) error {
	kept := r.f.candidates[:0]
	for _, c := range r.f.candidates {
		if c.FromListingId != fromListingId {
			kept = append(kept, c)
		}
	}
	r.f.candidates = kept
	for i := range rows {
		cp := rows[i]
		r.f.candidates = append(r.f.candidates, &cp)
	}
	return nil
}

func (r *fakeCandidateRepo) FindFrom(fromListingId string) ([]model.MatchCandidate, error) {
	var out []model.MatchCandidate
	for _, c := range r.f.candidates {
		if c.FromListingId == fromListingId {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) FindEdge(fromListingId, toListingId string) (*model.MatchCandidate, error) {
	for _, c := range r.f.candidates {
		if c.FromListingId == fromListingId && c.ToListingId == toListingId {
			cp := *c
			return &cp, nil
		}
	}
	return nil, notFound("candidate not found")
}

func (r *fakeCandidateRepo) DeleteByListing(listingId string) error {
	kept := r.f.candidates[:0]
	for _, c := range r.f.candidates {
		if c.FromListingId != listingId && c.ToListingId != listingId {
			kept = append(kept, c)
		}
	}
	r.f.candidates = kept
	return nil
}

// ==================== Chain ====================

type fakeChainRepo struct{ f *fixture }

func (r *fakeChainRepo) stored(uuid string) *model.SwapChain {
	for _, c := range r.f.chains {
		if c.Uuid == uuid {
			return c
		}
	}
	return nil
}

func (r *fakeChainRepo) FindByUuid(uuid string) (*model.SwapChain, error) {
	if c := r.stored(uuid); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, notFound("chain not found")
}

func (r *fakeChainRepo) FindByUuids(uuids []string) ([]model.SwapChain, error) {
	want := toSet(uuids)
	var out []model.SwapChain
	for _, c := range r.f.chains {
		if want[c.Uuid] {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeChainRepo) FindByHash(cycleHash string) (*model.SwapChain, error) {
	for _, c := range r.f.chains {
		if c.CycleHash == cycleHash {
			cp := *c
			return &cp, nil
		}
	}
	return nil, notFound("chain not found")
}

func (r *fakeChainRepo) FindExpired(before time.Time, limit int) ([]model.SwapChain, error) {
	var out []model.SwapChain
	for _, c := range r.f.chains {
		if c.Status == chain_status_enum.PENDING && c.AcceptBy.Valid && c.AcceptBy.Time.Before(before) {
			out = append(out, *c)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeChainRepo) Create(chain *model.SwapChain) error {
	for _, c := range r.f.chains {
		if c.CycleHash == chain.CycleHash || c.Uuid == chain.Uuid {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *chain
	r.f.chains = append(r.f.chains, &cp)
	return nil
}

func (r *fakeChainRepo) Lock(uuid string) (int64, error) {
	if c := r.stored(uuid); c != nil && c.Status == chain_status_enum.PENDING {
		c.Status = chain_status_enum.LOCKED
		c.AcceptBy.Valid = false
		return 1, nil
	}
	return 0, nil
}

func (r *fakeChainRepo) MarkBroken(uuid, reason, actor, byUserId string, at time.Time, allowedFrom []string) (int64, error) {
	c := r.stored(uuid)
	if c == nil {
		return 0, nil
	}
	allowed := toSet(allowedFrom)
	if !allowed[c.Status] {
		return 0, nil
	}
	c.Status = chain_status_enum.BROKEN
	c.BrokenReason = reason
	c.BrokenActor = actor
	c.BrokenByUserId = byUserId
	c.BrokenAt.Time, c.BrokenAt.Valid = at, true
	c.AcceptBy.Valid = false
	return 1, nil
}

// ==================== ChainMember ====================

type fakeChainMemberRepo struct{ f *fixture }

func (r *fakeChainMemberRepo) CreateBatch(members []model.SwapChainMember) error {
	for i := range members {
		cp := members[i]
		r.f.members = append(r.f.members, &cp)
	}
	return nil
}

func (r *fakeChainMemberRepo) FindByChainId(chainId string) ([]model.SwapChainMember, error) {
	var out []model.SwapChainMember
	for _, m := range r.f.members {
		if m.ChainId == chainId {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeChainMemberRepo) FindByChainIds(chainIds []string) ([]model.SwapChainMember, error) {
	want := toSet(chainIds)
	var out []model.SwapChainMember
	for _, m := range r.f.members {
		if want[m.ChainId] {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeChainMemberRepo) FindChainIdsByUserId(userId string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, m := range r.f.members {
		if m.UserId == userId && !seen[m.ChainId] {
			seen[m.ChainId] = true
			out = append(out, m.ChainId)
		}
	}
	return out, nil
}

func (r *fakeChainMemberRepo) FindChainIdsByListingId(listingId string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, m := range r.f.members {
		if m.ListingId == listingId && !seen[m.ChainId] {
			seen[m.ChainId] = true
			out = append(out, m.ChainId)
		}
	}
	return out, nil
}

func (r *fakeChainMemberRepo) FindBusyListingIds(chainStatuses []string) ([]string, error) {
	want := toSet(chainStatuses)
	busyChains := map[string]bool{}
	for _, c := range r.f.chains {
		if want[c.Status] {
			busyChains[c.Uuid] = true
		}
	}
	var out []string
	for _, m := range r.f.members {
		if busyChains[m.ChainId] {
			out = append(out, m.ListingId)
		}
	}
	return out, nil
}

func (r *fakeChainMemberRepo) Accept(chainId, userId string) (int64, error) {
	for _, m := range r.f.members {
		if m.ChainId == chainId && m.UserId == userId && !m.HasAccepted {
			m.HasAccepted = true
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeChainMemberRepo) CountUnaccepted(chainId string) (int64, error) {
	var n int64
	for _, m := range r.f.members {
		if m.ChainId == chainId && !m.HasAccepted {
			n++
		}
	}
	return n, nil
}

// ==================== Interest ====================

type fakeInterestRepo struct{ f *fixture }

func (r *fakeInterestRepo) stored(uuid string) *model.ListingInterest {
	for _, it := range r.f.interests {
		if it.Uuid == uuid {
			return it
		}
	}
	return nil
}

func (r *fakeInterestRepo) FindByUuid(uuid string) (*model.ListingInterest, error) {
	if it := r.stored(uuid); it != nil {
		cp := *it
		return &cp, nil
	}
	return nil, notFound("interest not found")
}

func (r *fakeInterestRepo) FindByPair(listingId, requesterListingId string) (*model.ListingInterest, error) {
	for _, it := range r.f.interests {
		if it.ListingId == listingId && it.RequesterListingId == requesterListingId {
			cp := *it
			return &cp, nil
		}
	}
	return nil, notFound("interest not found")
}

func (r *fakeInterestRepo) FindByTargetListings(listingIds []string) ([]model.ListingInterest, error) {
	want := toSet(listingIds)
	var out []model.ListingInterest
	for i := len(r.f.interests) - 1; i >= 0; i-- {
		if want[r.f.interests[i].ListingId] {
			out = append(out, *r.f.interests[i])
		}
	}
	return out, nil
}

func (r *fakeInterestRepo) FindByRequesterUserId(userId string) ([]model.ListingInterest, error) {
	var out []model.ListingInterest
	for i := len(r.f.interests) - 1; i >= 0; i-- {
		if r.f.interests[i].RequesterUserId == userId {
			out = append(out, *r.f.interests[i])
		}
	}
	return out, nil
}

func (r *fakeInterestRepo) FindOpenByListing(listingId string) ([]model.ListingInterest, error) {
	var out []model.ListingInterest
	for _, it := range r.f.interests {
		if it.ListingId == listingId && interest_status_enum.IsOpen(it.Status) {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeInterestRepo) FindOpenTouching(listingId string) ([]model.ListingInterest, error) {
	if r.f.failOpenTouching != nil {
		return nil, r.f.failOpenTouching
	}
	var out []model.ListingInterest
	for _, it := range r.f.interests {
		if (it.ListingId == listingId || it.RequesterListingId == listingId) &&
			interest_status_enum.IsOpen(it.Status) {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeInterestRepo) FindExpired(before time.Time, limit int) ([]model.ListingInterest, error) {
	var out []model.ListingInterest
	for _, it := range r.f.interests {
		if interest_status_enum.IsOpen(it.Status) && it.ExpiresAt.Valid && it.ExpiresAt.Time.Before(before) {
			out = append(out, *it)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeInterestRepo) Create(interest *model.ListingInterest) error {
	for _, it := range r.f.interests {
		if it.ListingId == interest.ListingId && it.RequesterListingId == interest.RequesterListingId {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *interest
	r.f.interests = append(r.f.interests, &cp)
	return nil
}

func (r *fakeInterestRepo) Update(interest *model.ListingInterest) error {
	if it := r.stored(interest.Uuid); it != nil {
		*it = *interest
		return nil
	}
	return notFound("interest not found")
}

func (r *fakeInterestRepo) Transition(uuid string, from []string, to string, at time.Time) (int64, error) {
	it := r.stored(uuid)
	if it == nil {
		return 0, nil
	}
	allowed := toSet(from)
	if !allowed[it.Status] {
		return 0, nil
	}
	it.Status = to
	switch to {
	case interest_status_enum.CONTACT_APPROVED, interest_status_enum.DECLINED:
		it.RespondedAt.Time, it.RespondedAt.Valid = at, true
	case interest_status_enum.CONFIRMED_RENTER:
		it.RespondedAt.Time, it.RespondedAt.Valid = at, true
		it.ConfirmedAt.Time, it.ConfirmedAt.Valid = at, true
		it.ReleasedAt.Valid = false
		it.ExpiresAt.Valid = false
	case interest_status_enum.EXPIRED:
		it.RespondedAt.Time, it.RespondedAt.Valid = at, true
		it.ReleasedAt.Time, it.ReleasedAt.Valid = at, true
	case interest_status_enum.RELEASED:
		it.RespondedAt.Time, it.RespondedAt.Valid = at, true
		it.ReleasedAt.Time, it.ReleasedAt.Valid = at, true
		it.ExpiresAt.Valid = false
	}
	return 1, nil
}

// ==================== Unlock ====================

type fakeUnlockRepo struct{ f *fixture }

func (r *fakeUnlockRepo) FindByChainId(chainId string) (*model.ContactUnlock, error) {
	for _, u := range r.f.unlocks {
		if u.ChainId == chainId {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("unlock not found")
}

func (r *fakeUnlockRepo) Create(unlock *model.ContactUnlock) error {
	cp := *unlock
	r.f.unlocks = append(r.f.unlocks, &cp)
	return nil
}

func (r *fakeUnlockRepo) UpsertApproval(approval *model.ContactUnlockApproval) error {
	for _, a := range r.f.approvals {
		if a.ContactUnlockId == approval.ContactUnlockId && a.ApproverUserId == approval.ApproverUserId {
			a.Approved = approval.Approved
			return nil
		}
	}
	cp := *approval
	r.f.approvals = append(r.f.approvals, &cp)
	return nil
}

func (r *fakeUnlockRepo) FindApprovals(unlockId string) ([]model.ContactUnlockApproval, error) {
	var out []model.ContactUnlockApproval
	for _, a := range r.f.approvals {
		if a.ContactUnlockId == unlockId {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeUnlockRepo) CountApproved(unlockId string) (int64, error) {
	var n int64
	for _, a := range r.f.approvals {
		if a.ContactUnlockId == unlockId && a.Approved {
			n++
		}
	}
	return n, nil
}

// ==================== Notification ====================

type fakeNotificationRepo struct{ f *fixture }

func (r *fakeNotificationRepo) Create(n *model.Notification) error {
	cp := *n
	r.f.notices = append(r.f.notices, &cp)
	return nil
}

func (r *fakeNotificationRepo) FindByUserId(userId string, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for i := len(r.f.notices) - 1; i >= 0 && len(out) < limit; i-- {
		if r.f.notices[i].UserId == userId {
			out = append(out, *r.f.notices[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(userId string, notifyId int64, at time.Time) (int64, error) {
	for _, n := range r.f.notices {
		if n.UserId == userId && n.NotifyId == notifyId && !n.ReadAt.Valid {
			n.ReadAt.Time, n.ReadAt.Valid = at, true
			return 1, nil
		}
	}
	return 0, nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
