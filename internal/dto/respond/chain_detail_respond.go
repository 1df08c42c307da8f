package respond

// ChainMemberRespond 交换链成员响应
type ChainMemberRespond struct {
	Position    int    `json:"position"`
	ListingId   string `json:"listing_id"`
	UserId      string `json:"user_id"`
	FullName    string `json:"full_name"`
	City        string `json:"city"`
	HousingType string `json:"housing_type"`
	Rent        int    `json:"rent"`
	HasAccepted bool   `json:"has_accepted"`
	// Phone 仅在链锁定且联系方式解锁获全员批准后填充
	Phone string `json:"phone,omitempty"`
}

// ChainDetailRespond 交换链详情响应
// 使用位置:
//   - internal/service/matching/chain.go: GetChainDetail / GetMyChains
type ChainDetailRespond struct {
	ChainId      string               `json:"chain_id"`
	Type         string               `json:"type"`
	Status       string               `json:"status"`
	CycleSize    int                  `json:"cycle_size"`
	AvgScore     int                  `json:"avg_score"`
	AcceptBy     string               `json:"accept_by,omitempty"`
	BrokenReason string               `json:"broken_reason,omitempty"`
	BrokenActor  string               `json:"broken_actor,omitempty"`
	BrokenAt     string               `json:"broken_at,omitempty"`
	CreatedAt    string               `json:"created_at"`
	Members      []ChainMemberRespond `json:"members"`
}
