// Package handler 提供 HTTP 请求处理器
// 本文件处理匹配运行相关的 API 请求
package handler

import (
	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/service"

	"github.com/gin-gonic/gin"
)

// MatchHandler 匹配请求处理器
type MatchHandler struct {
	matchingSvc service.MatchingService
}

// NewMatchHandler 创建匹配处理器实例
func NewMatchHandler(matchingSvc service.MatchingService) *MatchHandler {
	return &MatchHandler{matchingSvc: matchingSvc}
}

// RunForMe 以自己最近的在挂房源跑匹配
// POST /match/run
// 响应: respond.MatchRunRespond
func (h *MatchHandler) RunForMe(c *gin.Context) {
	data, err := h.matchingSvc.RunForUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RunForListing 为指定房源跑匹配
// POST /match/runForListing
// 请求体: request.MatchRunForListingRequest
// 响应: respond.MatchRunRespond
func (h *MatchHandler) RunForListing(c *gin.Context) {
	var req request.MatchRunForListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.matchingSvc.RunForListing(c.Request.Context(), req.ListingId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
