// Package router 提供 HTTP 路由注册
// 本文件定义匹配运行相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"homeswap_server/internal/infrastructure/middleware"
)

// RegisterMatchRoutes 注册匹配相关路由
func (rt *Router) RegisterMatchRoutes(r *gin.Engine) {
	matchGroup := r.Group("/match")
	matchGroup.Use(middleware.JWTAuth())
	{
		// POST /match/run - 以自己最近的在挂房源跑匹配
		matchGroup.POST("/run", rt.handlers.Match.RunForMe)
		// POST /match/runForListing - 为指定房源跑匹配
		matchGroup.POST("/runForListing", rt.handlers.Match.RunForListing)
	}
}
