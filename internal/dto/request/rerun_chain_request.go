package request

// RerunChainRequest 管理员为断链成员重跑匹配请求
// 使用位置:
//   - internal/handler/admin_handler.go: RerunChainMembers
type RerunChainRequest struct {
	ChainId string `json:"chain_id" binding:"required"`
}
