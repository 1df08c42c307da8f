package request

// DeclineInterestRequest 拒绝意向请求
// 使用位置:
//   - internal/handler/interest_handler.go: DeclineInterest
type DeclineInterestRequest struct {
	InterestId string `json:"interest_id" binding:"required"`
}
