package request

// BreakChainRequest 管理员强制断开交换链请求
// 使用位置:
//   - internal/handler/admin_handler.go: BreakChain
type BreakChainRequest struct {
	ChainId string `json:"chain_id" binding:"required"`
	Reason  string `json:"reason" binding:"required"` // 见 chain_break_reason_enum
}
