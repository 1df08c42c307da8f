// Package matching 实现换房匹配引擎：
// 打分、兼容图构建、直接互换与环形链发现、链生命周期与意向协商
package matching

import (
	"context"
	"time"

	"homeswap_server/internal/model"
)

// ListingNode 兼容图中的节点，房源打分所需的快照
type ListingNode struct {
	ListingId     string
	UserId        string
	OwnerName     string
	PenaltyPoints int

	DesiredCity string
	DesiredType string
	MaxBudget   int
	Timeline    string

	CurrentCity string
	CurrentType string
	CurrentRent int
	AvailableOn time.Time
	Features    []string
}

// Edge 兼容图中的一条有向边：from 的需求对 to 的供给打分
type Edge struct {
	From string
	To   string

	CityScore     int
	TypeScore     int
	BudgetScore   int
	TimelineScore int
	FeatureScore  int
	TotalScore    int

	// RankScore 排序用分：总分加互惠加成，减信誉扣减
	// 展示分（TotalScore）不受影响
	RankScore int
	Mutual    bool
}

// Graph 兼容图：节点按房源 ID 索引，边按 (from,to) 索引
type Graph struct {
	Nodes map[string]*ListingNode
	Edges map[string]map[string]*Edge // Edges[from][to]
}

// EdgesFrom 返回某节点的全部出边
func (g *Graph) EdgesFrom(listingId string) []*Edge {
	out := g.Edges[listingId]
	edges := make([]*Edge, 0, len(out))
	for _, e := range out {
		edges = append(edges, e)
	}
	return edges
}

// Edge 返回指定方向的边，不存在返回 nil
func (g *Graph) Edge(from, to string) *Edge {
	if out, ok := g.Edges[from]; ok {
		return out[to]
	}
	return nil
}

// NewNode 从房源模型构造图节点
func NewNode(listing *model.SwapListing, ownerName string, penaltyPoints int) *ListingNode {
	return &ListingNode{
		ListingId:     listing.Uuid,
		UserId:        listing.UserId,
		OwnerName:     ownerName,
		PenaltyPoints: penaltyPoints,
		DesiredCity:   listing.DesiredCity,
		DesiredType:   listing.DesiredType,
		MaxBudget:     listing.MaxBudget,
		Timeline:      listing.Timeline,
		CurrentCity:   listing.CurrentCity,
		CurrentType:   listing.CurrentType,
		CurrentRent:   listing.CurrentRent,
		AvailableOn:   listing.AvailableOn,
		Features:      listing.Features,
	}
}

// Advisor 生成无匹配/弱匹配场景下的改进建议
type Advisor interface {
	Suggest(ctx context.Context, node *ListingNode, scenario string, candidateCount int) []string
}

// Cache 推荐结果缓存，nil 实现表示跳过缓存
type Cache interface {
	Set(ctx context.Context, key, value string, timeout time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}
