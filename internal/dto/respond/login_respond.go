package respond

// LoginRespond 登录响应
// 使用位置:
//   - internal/service/auth/service.go: Login / RefreshToken
type LoginRespond struct {
	UserId       string `json:"user_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"is_admin"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
