package respond

// UnlockStatusRespond 联系方式解锁进度响应
// 使用位置:
//   - internal/service/matching/chain.go: RequestUnlock / ApproveUnlock
type UnlockStatusRespond struct {
	UnlockId      string   `json:"unlock_id"`
	ChainId       string   `json:"chain_id"`
	ApprovedCount int      `json:"approved_count"`
	MemberCount   int      `json:"member_count"`
	Unlocked      bool     `json:"unlocked"` // 全员批准
	ApprovedBy    []string `json:"approved_by"`
}
