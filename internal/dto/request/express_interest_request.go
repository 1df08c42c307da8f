package request

// ExpressInterestRequest 发起房源意向请求
// 使用位置:
//   - internal/handler/interest_handler.go: ExpressInterest
type ExpressInterestRequest struct {
	ListingId          string `json:"listing_id" binding:"required"` // 目标房源
	RequesterListingId string `json:"requester_listing_id"`          // 请求方自己的房源，缺省取其最新在挂房源
}
