// Package router 提供 HTTP 路由注册
// 本文件定义通知相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"homeswap_server/internal/infrastructure/middleware"
)

// RegisterNotificationRoutes 注册通知相关路由
func (rt *Router) RegisterNotificationRoutes(r *gin.Engine) {
	notificationGroup := r.Group("/notification")
	notificationGroup.Use(middleware.JWTAuth())
	{
		// GET /notification/list - 获取通知列表
		notificationGroup.GET("/list", rt.handlers.Notification.ListNotifications)
		// POST /notification/markRead - 标记通知已读
		notificationGroup.POST("/markRead", rt.handlers.Notification.MarkRead)
	}
}
