package request

// AddPenaltyRequest 管理员记录用户信誉扣分请求
// 使用位置:
//   - internal/handler/admin_handler.go: AddPenalty
type AddPenaltyRequest struct {
	UserId string `json:"user_id" binding:"required"`
	Points int    `json:"points" binding:"required,gt=0"`
}
