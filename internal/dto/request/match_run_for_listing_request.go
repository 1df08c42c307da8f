package request

// MatchRunForListingRequest 为指定房源跑匹配请求
// 使用位置:
//   - internal/handler/match_handler.go: RunForListing
type MatchRunForListingRequest struct {
	ListingId string `json:"listing_id" binding:"required"`
}
