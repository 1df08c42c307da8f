package request

// CreateListingRequest 创建交换房源请求
// 使用位置:
//   - internal/handler/listing_handler.go: CreateListing
//   - internal/service/listing/service.go: CreateListing
type CreateListingRequest struct {
	CurrentCity string   `json:"current_city" binding:"required"`
	CurrentType string   `json:"current_type" binding:"required"`
	CurrentRent int      `json:"current_rent" binding:"required,gt=0"`
	AvailableOn string   `json:"available_on" binding:"required"` // YYYY-MM-DD
	DesiredCity string   `json:"desired_city" binding:"required"`
	DesiredType string   `json:"desired_type" binding:"required"`
	MaxBudget   int      `json:"max_budget" binding:"required,gt=0"`
	Timeline    string   `json:"timeline" binding:"required"` // YYYY-MM-DD，期望完成交换的日期
	Features    []string `json:"features"`
}
