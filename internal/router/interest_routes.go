// Package router 提供 HTTP 路由注册
// 本文件定义换房意向协商的路由
package router

import (
	"github.com/gin-gonic/gin"

	"homeswap_server/internal/infrastructure/middleware"
)

// RegisterInterestRoutes 注册意向相关路由
func (rt *Router) RegisterInterestRoutes(r *gin.Engine) {
	interestGroup := r.Group("/interest")
	interestGroup.Use(middleware.JWTAuth())
	{
		// POST /interest/express - 表达换房意向
		interestGroup.POST("/express", rt.handlers.Interest.ExpressInterest)
		// POST /interest/approve - 批准意向，披露请求方联系方式
		interestGroup.POST("/approve", rt.handlers.Interest.ApproveInterest)
		// POST /interest/decline - 拒绝意向
		interestGroup.POST("/decline", rt.handlers.Interest.DeclineInterest)
		// POST /interest/confirmRenter - 确认成交
		interestGroup.POST("/confirmRenter", rt.handlers.Interest.ConfirmRenter)
		// GET /interest/incoming - 获取收到的意向
		interestGroup.GET("/incoming", rt.handlers.Interest.ListIncoming)
		// GET /interest/outgoing - 获取发出的意向
		interestGroup.GET("/outgoing", rt.handlers.Interest.ListOutgoing)
	}
}
