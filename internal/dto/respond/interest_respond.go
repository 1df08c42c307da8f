package respond

// InterestRespond 房源意向响应
// 使用位置:
//   - internal/service/matching/interest.go: 各意向接口
type InterestRespond struct {
	InterestId         string `json:"interest_id"`
	ListingId          string `json:"listing_id"`
	RequesterListingId string `json:"requester_listing_id"`
	RequesterUserId    string `json:"requester_user_id"`
	Status             string `json:"status"`
	ExpiresAt          string `json:"expires_at,omitempty"`
	RespondedAt        string `json:"responded_at,omitempty"`
	ConfirmedAt        string `json:"confirmed_at,omitempty"`
	ReleasedAt         string `json:"released_at,omitempty"`
	CreatedAt          string `json:"created_at"`
	// RequesterPhone 仅在意向批准联系后对房源方可见
	RequesterPhone string `json:"requester_phone,omitempty"`
}
