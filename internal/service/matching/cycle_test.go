package matching

import (
	"testing"
)

// ringNodes 三个节点构成单向环 L1 → L2 → L3 → L1
// 户型环环相扣，反向不兼容，不会出现直接互换
func ringNodes() []*ListingNode {
	return []*ListingNode{
		{
			ListingId: "L1", UserId: "U1",
			DesiredCity: "Lagos", DesiredType: "loft", MaxBudget: 2000,
			CurrentCity: "Abuja", CurrentType: "studio", CurrentRent: 900,
			AvailableOn: day("2026-03-01"),
		},
		{
			ListingId: "L2", UserId: "U2",
			DesiredCity: "Kano", DesiredType: "villa", MaxBudget: 2000,
			CurrentCity: "Lagos", CurrentType: "loft", CurrentRent: 1100,
			AvailableOn: day("2026-03-10"),
		},
		{
			ListingId: "L3", UserId: "U3",
			DesiredCity: "Abuja", DesiredType: "studio", MaxBudget: 2000,
			CurrentCity: "Kano", CurrentType: "villa", CurrentRent: 1300,
			AvailableOn: day("2026-03-20"),
		},
	}
}

func TestCanonicalHash(t *testing.T) {
	h := CanonicalHash([]string{"L2", "L1", "L3"})
	if h != "L1-L2-L3" {
		t.Errorf("hash = %s, want L1-L2-L3", h)
	}
	// 与遍历起点和方向无关
	if CanonicalHash([]string{"L3", "L2", "L1"}) != h {
		t.Error("hash should be invariant under rotation and direction")
	}
	if CanonicalHash([]string{"L1", "L2"}) == h {
		t.Error("different member sets must hash differently")
	}
}

func TestFindCycles(t *testing.T) {
	g := BuildGraph(ringNodes(), 0)

	cycles := g.FindCycles("L1")
	if len(cycles) != 1 {
		t.Fatalf("cycles = %d, want 1", len(cycles))
	}
	c := cycles[0]
	if c.Len() != 3 {
		t.Errorf("cycle length = %d, want 3", c.Len())
	}
	if CanonicalHash(c.ListingIds) != "L1-L2-L3" {
		t.Errorf("cycle members = %v", c.ListingIds)
	}
	if c.AvgRank <= 0 {
		t.Errorf("AvgRank = %f, want > 0", c.AvgRank)
	}
}

func TestFindCyclesSkipsSameOwnerMembers(t *testing.T) {
	nodes := ringNodes()
	nodes[2].UserId = nodes[0].UserId // L3 与起点同主
	g := BuildGraph(nodes, 0)
	if cycles := g.FindCycles("L1"); len(cycles) != 0 {
		t.Errorf("cycles = %d, want 0 when members share an owner", len(cycles))
	}
}

func TestFindCyclesUnknownStart(t *testing.T) {
	g := BuildGraph(ringNodes(), 0)
	if cycles := g.FindCycles("L999"); cycles != nil {
		t.Errorf("cycles = %v, want nil for unknown start", cycles)
	}
}

func TestBestCycle(t *testing.T) {
	cycles := []*Cycle{
		{ListingIds: []string{"L1", "L2", "L3", "L4"}, AvgRank: 90},
		{ListingIds: []string{"L1", "L2", "L3"}, AvgRank: 60},
		{ListingIds: []string{"L1", "L5", "L6"}, AvgRank: 70},
	}
	best := BestCycle(cycles)
	if best == nil {
		t.Fatal("expected a best cycle")
	}
	// 人数少优先于平均分
	if best.Len() != 3 || best.AvgRank != 70 {
		t.Errorf("best = %v (%f), want 3-cycle with AvgRank 70", best.ListingIds, best.AvgRank)
	}

	if BestCycle(nil) != nil {
		t.Error("expected nil for empty input")
	}
}
