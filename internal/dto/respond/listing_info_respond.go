package respond

// ListingInfoRespond 房源信息响应
// 使用位置:
//   - internal/service/listing/service.go: 各查询接口
type ListingInfoRespond struct {
	ListingId   string   `json:"listing_id"`
	UserId      string   `json:"user_id"`
	Status      string   `json:"status"`
	CurrentCity string   `json:"current_city"`
	CurrentType string   `json:"current_type"`
	CurrentRent int      `json:"current_rent"`
	AvailableOn string   `json:"available_on"`
	DesiredCity string   `json:"desired_city"`
	DesiredType string   `json:"desired_type"`
	MaxBudget   int      `json:"max_budget"`
	Timeline    string   `json:"timeline"`
	Features    []string `json:"features"`
	ExpiresAt   string   `json:"expires_at,omitempty"`
	MatchedAt   string   `json:"matched_at,omitempty"`
}
