package request

// RenewListingRequest 续期房源请求
// 使用位置:
//   - internal/handler/listing_handler.go: RenewListing
type RenewListingRequest struct {
	ListingId string `json:"listing_id" binding:"required"`
}
