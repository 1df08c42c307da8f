// 本文件实现环形交换发现：围绕起点房源 DFS 找 3-4 人环并挑最优
package matching

import (
	"sort"
	"strings"

	"homeswap_server/pkg/constants"
)

// Cycle 一个候选环：成员按遍历顺序排列，首位是起点房源
type Cycle struct {
	ListingIds []string
	// AvgRank 环上各边排序分的平均值
	AvgRank float64
}

// Len 环大小
func (c *Cycle) Len() int {
	return len(c.ListingIds)
}

// CanonicalHash 规范化环哈希：成员 ID 排序后用 "-" 连接
// 与遍历起点和方向无关，同一组房源得到同一个哈希
func CanonicalHash(listingIds []string) string {
	ids := make([]string, len(listingIds))
	copy(ids, listingIds)
	sort.Strings(ids)
	return strings.Join(ids, "-")
}

// FindCycles 找包含起点的全部 3 到 MAX_CYCLE_LEN 人环
// 同一组房源只保留一个代表（按规范化哈希去重）
func (g *Graph) FindCycles(startId string) []*Cycle {
	if g.Nodes[startId] == nil {
		return nil
	}

	var cycles []*Cycle
	seen := map[string]bool{}
	path := []string{startId}
	onPath := map[string]bool{startId: true}

	var dfs func(current string)
	dfs = func(current string) {
		for _, e := range g.EdgesFrom(current) {
			if e.To == startId {
				// 闭环：2 人互换走直接互换路径，这里只收 3 人以上
				if len(path) >= 3 {
					hash := CanonicalHash(path)
					if !seen[hash] {
						seen[hash] = true
						cycles = append(cycles, g.newCycle(path))
					}
				}
				continue
			}
			if onPath[e.To] || len(path) >= constants.MAX_CYCLE_LEN {
				continue
			}
			// 环成员两两异主
			if g.sharesOwner(path, e.To) {
				continue
			}
			path = append(path, e.To)
			onPath[e.To] = true
			dfs(e.To)
			path = path[:len(path)-1]
			delete(onPath, e.To)
		}
	}
	dfs(startId)
	return cycles
}

// sharesOwner 检查候选节点是否与路径上的节点同主
func (g *Graph) sharesOwner(path []string, candidateId string) bool {
	candidate := g.Nodes[candidateId]
	for _, id := range path {
		if g.Nodes[id].UserId == candidate.UserId {
			return true
		}
	}
	return false
}

// newCycle 构造环并计算环上边的平均排序分
func (g *Graph) newCycle(path []string) *Cycle {
	ids := make([]string, len(path))
	copy(ids, path)
	sum := 0
	for i := range ids {
		next := ids[(i+1)%len(ids)]
		sum += g.Edge(ids[i], next).RankScore
	}
	return &Cycle{
		ListingIds: ids,
		AvgRank:    float64(sum) / float64(len(ids)),
	}
}

// BestCycle 在候选环中挑最优：先取人数最少的一组，再取平均分最高
// 人越少协调成本越低，优先级高于分数
func BestCycle(cycles []*Cycle) *Cycle {
	if len(cycles) == 0 {
		return nil
	}
	minLen := cycles[0].Len()
	for _, c := range cycles {
		if c.Len() < minLen {
			minLen = c.Len()
		}
	}
	var best *Cycle
	for _, c := range cycles {
		if c.Len() != minLen {
			continue
		}
		if best == nil || c.AvgRank > best.AvgRank {
			best = c
		}
	}
	return best
}
