package respond

// MatchStatsRespond 匹配运行统计
type MatchStatsRespond struct {
	CandidatesScored int `json:"candidates_scored"` // 打分的候选数
	MutualMatches    int `json:"mutual_matches"`    // 互惠候选数
	CyclesFound      int `json:"cycles_found"`      // 发现的环数
}

// MatchRunRespond 匹配运行结果响应
// 使用位置:
//   - internal/service/matching/service.go: RunForUser / RunForListing
type MatchRunRespond struct {
	Found           bool                    `json:"found"`
	Message         string                  `json:"message"`
	MatchScenario   string                  `json:"match_scenario"` // ONE_TO_ONE / ONE_TO_MANY / INDEPENDENT
	Badge           string                  `json:"badge,omitempty"`
	ChainId         string                  `json:"chain_id,omitempty"`
	ChainStatus     string                  `json:"chain_status,omitempty"`
	Chain           *ChainDetailRespond     `json:"chain,omitempty"`
	Recommendations []RecommendationRespond `json:"recommendations,omitempty"`
	Stats           *MatchStatsRespond      `json:"stats,omitempty"`
	AiSuggestions   []string                `json:"ai_suggestions,omitempty"`
}
