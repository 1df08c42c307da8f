// Package handler 提供 HTTP 请求处理器
// 本文件处理注册、登录和令牌刷新的 API 请求
package handler

import (
	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证请求处理器
// 通过构造函数注入 AuthService，遵循依赖倒置原则
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 用户注册
// POST /auth/register
// 请求体: request.RegisterRequest
// 响应: respond.RegisterRespond
func (h *AuthHandler) Register(c *gin.Context) {
	// 1. 绑定并验证请求参数
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	// 2. 调用 Service 层处理业务逻辑
	data, err := h.authSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}

	// 3. 返回成功响应
	HandleSuccess(c, data)
}

// Login 用户登录（密码登录）
// POST /auth/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond (用户信息 + JWT 双 Token)
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.authSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RefreshToken 刷新 Access Token
// POST /auth/refresh
// 请求体: request.RefreshTokenRequest
// 响应: { access_token: string }
//
// 单点互踢机制:
//   - 用户登录时会在 Redis 中存储 Token ID
//   - 如果用户在其他设备登录，会覆盖旧的 Token ID
//   - 使用旧 Token ID 刷新时会被拒绝
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	accessToken, err := h.authSvc.RefreshToken(req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{
		"access_token": accessToken,
	})
}
