package request

// UpdateListingRequest 更新交换房源请求
// 使用位置:
//   - internal/handler/listing_handler.go: UpdateListing
//   - internal/service/listing/service.go: UpdateListing
type UpdateListingRequest struct {
	ListingId   string   `json:"listing_id" binding:"required"`
	CurrentCity string   `json:"current_city" binding:"required"`
	CurrentType string   `json:"current_type" binding:"required"`
	CurrentRent int      `json:"current_rent" binding:"required,gt=0"`
	AvailableOn string   `json:"available_on" binding:"required"`
	DesiredCity string   `json:"desired_city" binding:"required"`
	DesiredType string   `json:"desired_type" binding:"required"`
	MaxBudget   int      `json:"max_budget" binding:"required,gt=0"`
	Timeline    string   `json:"timeline" binding:"required"`
	Features    []string `json:"features"`
}
