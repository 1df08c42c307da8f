package respond

// NotificationRespond 站内通知响应
// 使用位置:
//   - internal/service/notify/service.go: ListByUser
type NotificationRespond struct {
	NotifyId  int64          `json:"notify_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	ChainId   string         `json:"chain_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	ReadAt    string         `json:"read_at,omitempty"`
	CreatedAt string         `json:"created_at"`
}
