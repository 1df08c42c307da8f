package request

// MarkNotificationReadRequest 标记通知已读请求
// 使用位置:
//   - internal/handler/notification_handler.go: MarkRead
type MarkNotificationReadRequest struct {
	NotifyId int64 `json:"notify_id" binding:"required"`
}
