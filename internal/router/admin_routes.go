// Package router 提供 HTTP 路由注册
// 本文件定义管理员操作的路由
package router

import (
	"github.com/gin-gonic/gin"

	"homeswap_server/internal/infrastructure/middleware"
)

// RegisterAdminRoutes 注册管理员相关路由
// 在登录态之上额外校验管理员标志
func (rt *Router) RegisterAdminRoutes(r *gin.Engine) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuth(), middleware.AdminAuth(rt.repos))
	{
		// POST /admin/chain/break - 管理员断链
		adminGroup.POST("/chain/break", rt.handlers.Admin.BreakChain)
		// POST /admin/chain/rerun - 为链成员重跑匹配
		adminGroup.POST("/chain/rerun", rt.handlers.Admin.RerunChain)
		// POST /admin/user/penalty - 记录用户信誉扣分
		adminGroup.POST("/user/penalty", rt.handlers.Admin.AddPenalty)
	}
}
