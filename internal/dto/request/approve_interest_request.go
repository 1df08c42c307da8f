package request

// ApproveInterestRequest 批准意向（同意交换联系方式）请求
// 使用位置:
//   - internal/handler/interest_handler.go: ApproveInterest
type ApproveInterestRequest struct {
	InterestId string `json:"interest_id" binding:"required"`
}
