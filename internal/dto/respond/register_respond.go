package respond

// RegisterRespond 用户注册响应
// 使用位置:
//   - internal/service/auth/service.go: Register
type RegisterRespond struct {
	UserId   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
