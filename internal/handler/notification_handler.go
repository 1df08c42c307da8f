// Package handler 提供 HTTP 请求处理器
// 本文件处理通知相关的 API 请求
package handler

import (
	"strconv"

	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/service"

	"github.com/gin-gonic/gin"
)

// defaultNotificationLimit 通知列表默认返回条数
const defaultNotificationLimit = 50

// NotificationHandler 通知请求处理器
type NotificationHandler struct {
	notifySvc service.NotifyService
}

// NewNotificationHandler 创建通知处理器实例
func NewNotificationHandler(notifySvc service.NotifyService) *NotificationHandler {
	return &NotificationHandler{notifySvc: notifySvc}
}

// ListNotifications 获取自己的通知列表
// GET /notification/list?limit=50
// 响应: []respond.NotificationRespond
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultNotificationLimit)))
	if err != nil || limit <= 0 {
		limit = defaultNotificationLimit
	}
	data, err := h.notifySvc.ListByUser(c.GetString("user_id"), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 标记通知已读
// POST /notification/markRead
// 请求体: request.MarkNotificationReadRequest
// 响应: nil
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req request.MarkNotificationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.notifySvc.MarkRead(c.GetString("user_id"), req.NotifyId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
