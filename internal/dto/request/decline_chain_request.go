package request

// DeclineChainRequest 拒绝交换链请求
// 使用位置:
//   - internal/handler/chain_handler.go: DeclineChain
type DeclineChainRequest struct {
	ChainId string `json:"chain_id" binding:"required"`
}
