// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"homeswap_server/internal/dao/mysql/repository"
	"homeswap_server/internal/handler"
)

// Router 路由管理器
// 持有 Handler 聚合与 Repository 聚合（管理员中间件需要查库）
type Router struct {
	handlers *handler.Handlers
	repos    *repository.Repositories
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers, repos *repository.Repositories) *Router {
	return &Router{handlers: handlers, repos: repos}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用，按模块分别注册各个路由组
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r)         // 认证路由（注册/登录/刷新）
	rt.RegisterListingRoutes(r)      // 房源路由
	rt.RegisterMatchRoutes(r)        // 匹配路由
	rt.RegisterChainRoutes(r)        // 交换链路由
	rt.RegisterInterestRoutes(r)     // 意向路由
	rt.RegisterNotificationRoutes(r) // 通知路由
	rt.RegisterAdminRoutes(r)        // 管理员路由
}
