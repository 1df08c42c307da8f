package request

// CloseListingRequest 下架房源请求
// 使用位置:
//   - internal/handler/listing_handler.go: CloseListing
type CloseListingRequest struct {
	ListingId string `json:"listing_id" binding:"required"`
}
