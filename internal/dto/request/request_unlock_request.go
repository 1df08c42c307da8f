package request

// RequestUnlockRequest 发起联系方式解锁请求
// 使用位置:
//   - internal/handler/chain_handler.go: RequestUnlock
type RequestUnlockRequest struct {
	ChainId string `json:"chain_id" binding:"required"`
}
