package request

// AcceptChainRequest 确认交换链请求
// 使用位置:
//   - internal/handler/chain_handler.go: AcceptChain
type AcceptChainRequest struct {
	ChainId string `json:"chain_id" binding:"required"`
}
