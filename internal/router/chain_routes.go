// Package router 提供 HTTP 路由注册
// 本文件定义交换链生命周期和联系方式解锁的路由
package router

import (
	"github.com/gin-gonic/gin"

	"homeswap_server/internal/infrastructure/middleware"
)

// RegisterChainRoutes 注册交换链相关路由
func (rt *Router) RegisterChainRoutes(r *gin.Engine) {
	chainGroup := r.Group("/chain")
	chainGroup.Use(middleware.JWTAuth())
	{
		// POST /chain/accept - 确认链
		chainGroup.POST("/accept", rt.handlers.Chain.AcceptChain)
		// POST /chain/decline - 拒绝链
		chainGroup.POST("/decline", rt.handlers.Chain.DeclineChain)
		// GET /chain/mine - 获取自己参与的链
		chainGroup.GET("/mine", rt.handlers.Chain.GetMyChains)
		// POST /chain/unlock/request - 发起联系方式解锁
		chainGroup.POST("/unlock/request", rt.handlers.Chain.RequestUnlock)
		// POST /chain/unlock/approve - 批准联系方式解锁
		chainGroup.POST("/unlock/approve", rt.handlers.Chain.ApproveUnlock)
		// GET /chain/:chainId - 获取链详情（仅成员可见）
		chainGroup.GET("/:chainId", rt.handlers.Chain.GetChainDetail)
	}
}
