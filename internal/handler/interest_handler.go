// Package handler 提供 HTTP 请求处理器
// 本文件处理换房意向协商的 API 请求
package handler

import (
	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/service"

	"github.com/gin-gonic/gin"
)

// InterestHandler 换房意向请求处理器
type InterestHandler struct {
	matchingSvc service.MatchingService
}

// NewInterestHandler 创建意向处理器实例
func NewInterestHandler(matchingSvc service.MatchingService) *InterestHandler {
	return &InterestHandler{matchingSvc: matchingSvc}
}

// ExpressInterest 表达换房意向
// POST /interest/express
// 请求体: request.ExpressInterestRequest
// 响应: respond.InterestRespond
func (h *InterestHandler) ExpressInterest(c *gin.Context) {
	var req request.ExpressInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.matchingSvc.RequestInterest(c.Request.Context(),
		c.GetString("user_id"), req.ListingId, req.RequesterListingId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ApproveInterest 批准意向，披露请求方联系方式
// POST /interest/approve
// 请求体: request.ApproveInterestRequest
// 响应: respond.InterestRespond
func (h *InterestHandler) ApproveInterest(c *gin.Context) {
	var req request.ApproveInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.matchingSvc.ApproveInterest(c.Request.Context(), c.GetString("user_id"), req.InterestId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeclineInterest 拒绝意向
// POST /interest/decline
// 请求体: request.DeclineInterestRequest
// 响应: respond.InterestRespond
func (h *InterestHandler) DeclineInterest(c *gin.Context) {
	var req request.DeclineInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.matchingSvc.DeclineInterest(c.Request.Context(), c.GetString("user_id"), req.InterestId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ConfirmRenter 确认成交
// POST /interest/confirmRenter
// 请求体: request.ConfirmRenterRequest
// 响应: respond.InterestRespond
//
// 成交是事务性的：双方房源标记成交，两侧其余进行中意向全部释放，
// 涉及的链被断开，受影响房源自动重跑匹配
func (h *InterestHandler) ConfirmRenter(c *gin.Context) {
	var req request.ConfirmRenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.matchingSvc.ConfirmRenter(c.Request.Context(), c.GetString("user_id"), req.InterestId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListIncoming 获取收到的意向
// GET /interest/incoming
// 响应: []respond.InterestRespond
func (h *InterestHandler) ListIncoming(c *gin.Context) {
	data, err := h.matchingSvc.ListIncomingInterests(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListOutgoing 获取发出的意向
// GET /interest/outgoing
// 响应: []respond.InterestRespond
func (h *InterestHandler) ListOutgoing(c *gin.Context) {
	data, err := h.matchingSvc.ListOutgoingInterests(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
