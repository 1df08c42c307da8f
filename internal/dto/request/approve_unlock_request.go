package request

// ApproveUnlockRequest 批准联系方式解锁请求
// 使用位置:
//   - internal/handler/chain_handler.go: ApproveUnlock
type ApproveUnlockRequest struct {
	ChainId string `json:"chain_id" binding:"required"`
}
