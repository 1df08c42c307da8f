// Package advisor 在匹配无果时给出改善建议
// 规则引擎基于房源的期望条件生成提示文案，只在独立场景下被调用一次
package advisor

import (
	"context"
	"fmt"

	"homeswap_server/internal/service/matching"
	"homeswap_server/pkg/enum/match/match_scenario_enum"
)

// Service 规则建议引擎，实现 matching.Advisor
type Service struct{}

// NewAdvisorService 创建建议引擎实例
func NewAdvisorService() *Service {
	return &Service{}
}

// Suggest 为匹配无果的房源生成改善建议
// node: 当前房源节点
// scenario: 匹配场景
// candidateCount: 打分通过的候选数
func (s *Service) Suggest(ctx context.Context, node *matching.ListingNode, scenario string, candidateCount int) []string {
	if scenario != match_scenario_enum.INDEPENDENT {
		return nil
	}

	var tips []string
	if candidateCount == 0 {
		tips = append(tips, "当前没有与你条件相容的房源，可以先放宽期望条件再试")
	}
	if node.MaxBudget < node.CurrentRent {
		tips = append(tips,
			fmt.Sprintf("你的预算上限 %d 低于自己现居月租 %d，适当提高预算能匹配到同档房源", node.MaxBudget, node.CurrentRent))
	}
	if node.DesiredCity != "" && node.DesiredCity == node.CurrentCity {
		tips = append(tips, "期望城市与现居城市相同，补充几个备选城市能显著扩大候选池")
	}
	if node.DesiredType != "" {
		tips = append(tips, fmt.Sprintf("期望户型「%s」限定较死，写成多个可接受的户型会有更多选择", node.DesiredType))
	}
	if len(node.Features) > 3 {
		tips = append(tips, "期望特性较多会压低匹配分，保留最在意的两三项即可")
	}
	if len(tips) == 0 {
		tips = append(tips, "条件设置合理，候选池暂时没有互补房源，系统会在新房源上架后自动重试")
	}
	return tips
}
