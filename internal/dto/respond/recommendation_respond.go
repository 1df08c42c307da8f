package respond

// ScoreBreakdown 匹配得分拆解
type ScoreBreakdown struct {
	CityScore     int `json:"city_score"`     // 最高 30
	TypeScore     int `json:"type_score"`     // 最高 30
	BudgetScore   int `json:"budget_score"`   // 最高 25
	TimelineScore int `json:"timeline_score"` // 最高 10
	FeatureScore  int `json:"feature_score"`  // 最高 5
}

// RecommendationRespond 单向推荐响应
// 使用位置:
//   - internal/service/matching/service.go: 匹配运行结果
type RecommendationRespond struct {
	ListingId   string         `json:"listing_id"`
	OwnerName   string         `json:"owner_name"`
	City        string         `json:"city"`
	HousingType string         `json:"housing_type"`
	Rent        int            `json:"rent"`
	TotalScore  int            `json:"total_score"`
	RankScore   int            `json:"rank_score"` // 总分 + 互惠加成 - 信誉扣减
	Mutual      bool           `json:"mutual"`     // 对方是否也匹配到我
	Breakdown   ScoreBreakdown `json:"breakdown"`
}
