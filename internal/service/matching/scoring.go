// 本文件实现匹配打分：五个维度（城市 30 / 户型 30 / 预算 25 / 时间线 10 / 特性 5）
package matching

import (
	"math"
	"regexp"
	"strings"
	"time"

	"homeswap_server/pkg/constants"
)

// 城市名按逗号、横线、斜线和空白切词
var cityTokenPattern = regexp.MustCompile(`[,\-/\s]+`)

// scoreCity 城市匹配分
// 完全一致 30，有共同词 15，否则 0
// "Berlin, Mitte" 和 "berlin" 算部分匹配
func scoreCity(desired, current string) int {
	d := strings.ToLower(strings.TrimSpace(desired))
	c := strings.ToLower(strings.TrimSpace(current))
	if d == "" || c == "" {
		return 0
	}
	if d == c {
		return 30
	}
	dTokens := cityTokens(d)
	cTokens := cityTokens(c)
	for t := range dTokens {
		if cTokens[t] {
			return 15
		}
	}
	return 0
}

// cityTokens 切词并去空
func cityTokens(s string) map[string]bool {
	tokens := map[string]bool{}
	for _, t := range cityTokenPattern.Split(s, -1) {
		if t != "" {
			tokens[t] = true
		}
	}
	return tokens
}

// scoreType 户型匹配分
// 完全一致 30，一方包含另一方 15（"2-bedroom" 和 "2-bedroom apartment"），否则 0
func scoreType(desired, current string) int {
	d := strings.ToLower(strings.TrimSpace(desired))
	c := strings.ToLower(strings.TrimSpace(current))
	if d == "" || c == "" {
		return 0
	}
	if d == c {
		return 30
	}
	if strings.Contains(d, c) || strings.Contains(c, d) {
		return 15
	}
	return 0
}

// scoreBudget 预算匹配分
// 租金相对预算越低分越高：round(25 * (1 - rent/maxBudget))，夹在 [0, 25]
// 超预算、预算或租金非法直接 0
func scoreBudget(maxBudget, rent int) int {
	if maxBudget <= 0 || rent <= 0 || rent > maxBudget {
		return 0
	}
	score := int(math.Round(25 * (1 - float64(rent)/float64(maxBudget))))
	if score < 0 {
		return 0
	}
	if score > 25 {
		return 25
	}
	return score
}

// scoreTimeline 时间线匹配分
// 双方可交房日期相差越近分越高：14 天内 10 分，30 天 8 分，60 天 5 分，90 天 2 分
// 任一方日期为零值按 0 处理
func scoreTimeline(a, b time.Time) int {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	days := int(math.Abs(a.Sub(b).Hours()) / 24)
	switch {
	case days <= 14:
		return 10
	case days <= 30:
		return 8
	case days <= 60:
		return 5
	case days <= 90:
		return 2
	default:
		return 0
	}
}

// scoreFeatures 特性匹配分
// round(5 * 交集 / 较大集合)，任一方为空 0 分
func scoreFeatures(wanted, offered []string) int {
	if len(wanted) == 0 || len(offered) == 0 {
		return 0
	}
	offeredSet := map[string]bool{}
	for _, f := range offered {
		offeredSet[normalizeFeature(f)] = true
	}
	overlap := 0
	seen := map[string]bool{}
	for _, f := range wanted {
		n := normalizeFeature(f)
		if offeredSet[n] && !seen[n] {
			overlap++
			seen[n] = true
		}
	}
	denom := len(wanted)
	if len(offered) > denom {
		denom = len(offered)
	}
	return int(math.Round(5 * float64(overlap) / float64(denom)))
}

func normalizeFeature(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// scoreEdge 计算 from 的需求对 to 的供给的一条有向边
// 硬性门槛：户型得分为 0 或租金超预算时没有边
func scoreEdge(from, to *ListingNode) *Edge {
	typeScore := scoreType(from.DesiredType, to.CurrentType)
	if typeScore == 0 {
		return nil
	}
	if from.MaxBudget < to.CurrentRent {
		return nil
	}

	e := &Edge{
		From:          from.ListingId,
		To:            to.ListingId,
		CityScore:     scoreCity(from.DesiredCity, to.CurrentCity),
		TypeScore:     typeScore,
		BudgetScore:   scoreBudget(from.MaxBudget, to.CurrentRent),
		TimelineScore: scoreTimeline(from.AvailableOn, to.AvailableOn),
		FeatureScore:  scoreFeatures(from.Features, to.Features),
	}
	e.TotalScore = e.CityScore + e.TypeScore + e.BudgetScore + e.TimelineScore + e.FeatureScore
	if e.TotalScore > constants.MAX_TOTAL_SCORE {
		e.TotalScore = constants.MAX_TOTAL_SCORE
	}
	e.RankScore = e.TotalScore
	return e
}
