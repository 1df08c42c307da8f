package request

// ConfirmRenterRequest 确认成交请求
// 使用位置:
//   - internal/handler/interest_handler.go: ConfirmRenter
type ConfirmRenterRequest struct {
	InterestId string `json:"interest_id" binding:"required"`
}
