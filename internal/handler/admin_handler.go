// Package handler 提供 HTTP 请求处理器
// 本文件处理管理员操作的 API 请求
package handler

import (
	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/service"
	"homeswap_server/pkg/enum/chain/chain_break_reason_enum"
	"homeswap_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理员请求处理器
// 所有路由都挂在 AdminAuth 中间件之后
type AdminHandler struct {
	matchingSvc service.MatchingService
	authSvc     service.AuthService
}

// NewAdminHandler 创建管理员处理器实例
func NewAdminHandler(matchingSvc service.MatchingService, authSvc service.AuthService) *AdminHandler {
	return &AdminHandler{matchingSvc: matchingSvc, authSvc: authSvc}
}

// BreakChain 管理员断链
// POST /admin/chain/break
// 请求体: request.BreakChainRequest
// 响应: respond.ChainDetailRespond
func (h *AdminHandler) BreakChain(c *gin.Context) {
	var req request.BreakChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !chain_break_reason_enum.Valid(req.Reason) {
		HandleError(c, errorx.Newf(errorx.CodeInvalidParam, "未知的断链原因 %s", req.Reason))
		return
	}
	data, err := h.matchingSvc.BreakChainByAdmin(c.Request.Context(),
		req.ChainId, c.GetString("user_id"), req.Reason)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RerunChain 管理员为链成员重跑匹配
// POST /admin/chain/rerun
// 请求体: request.RerunChainRequest
// 响应: { listing_ids: []string }
func (h *AdminHandler) RerunChain(c *gin.Context) {
	var req request.RerunChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	listingIds, err := h.matchingSvc.RerunChainMembersByAdmin(c.Request.Context(), req.ChainId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{
		"listing_ids": listingIds,
	})
}

// AddPenalty 记录用户信誉扣分
// POST /admin/user/penalty
// 请求体: request.AddPenaltyRequest
// 响应: nil
func (h *AdminHandler) AddPenalty(c *gin.Context) {
	var req request.AddPenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.authSvc.AddPenalty(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
