// 本文件实现兼容图构建：对所有异主房源对打分建边，标注互惠并计算排序分
package matching

import (
	"sort"

	"homeswap_server/pkg/constants"
)

// BuildGraph 从节点集合构建兼容图
// 同一用户的房源之间不建边
// rankPenaltyWeight 为 0 时信誉扣分不影响排序
func BuildGraph(nodes []*ListingNode, rankPenaltyWeight int) *Graph {
	g := &Graph{
		Nodes: make(map[string]*ListingNode, len(nodes)),
		Edges: make(map[string]map[string]*Edge, len(nodes)),
	}
	for _, n := range nodes {
		g.Nodes[n.ListingId] = n
		g.Edges[n.ListingId] = make(map[string]*Edge)
	}

	for _, from := range nodes {
		for _, to := range nodes {
			if from.ListingId == to.ListingId || from.UserId == to.UserId {
				continue
			}
			if e := scoreEdge(from, to); e != nil {
				g.Edges[from.ListingId][to.ListingId] = e
			}
		}
	}

	// 标注互惠并调整排序分
	for _, out := range g.Edges {
		for _, e := range out {
			if g.Edge(e.To, e.From) != nil {
				e.Mutual = true
				e.RankScore = e.TotalScore + constants.RECIPROCITY_BONUS
			}
			if rankPenaltyWeight > 0 {
				if owner := g.Nodes[e.To]; owner != nil && owner.PenaltyPoints > 0 {
					e.RankScore -= rankPenaltyWeight * owner.PenaltyPoints
					if e.RankScore < 0 {
						e.RankScore = 0
					}
				}
			}
		}
	}
	return g
}

// RankedEdgesFrom 返回某节点的出边，排序分高的在前，同分按目标 ID 稳定排序
func (g *Graph) RankedEdgesFrom(listingId string) []*Edge {
	edges := g.EdgesFrom(listingId)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].RankScore != edges[j].RankScore {
			return edges[i].RankScore > edges[j].RankScore
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// BestDirectPair 在互惠候选中找最优直接互换对
// 取正反两边排序分平均值最高者，没有互惠候选返回 nil
func (g *Graph) BestDirectPair(listingId string) *Edge {
	var best *Edge
	bestAvg := -1.0
	for _, e := range g.RankedEdgesFrom(listingId) {
		if !e.Mutual {
			continue
		}
		rev := g.Edge(e.To, e.From)
		avg := (float64(e.RankScore) + float64(rev.RankScore)) / 2
		if avg > bestAvg {
			bestAvg = avg
			best = e
		}
	}
	return best
}
