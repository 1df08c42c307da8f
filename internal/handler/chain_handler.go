// Package handler 提供 HTTP 请求处理器
// 本文件处理交换链生命周期和联系方式解锁的 API 请求
package handler

import (
	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ChainHandler 交换链请求处理器
type ChainHandler struct {
	matchingSvc service.MatchingService
}

// NewChainHandler 创建交换链处理器实例
func NewChainHandler(matchingSvc service.MatchingService) *ChainHandler {
	return &ChainHandler{matchingSvc: matchingSvc}
}

// AcceptChain 确认链
// POST /chain/accept
// 请求体: request.AcceptChainRequest
// 响应: respond.ChainDetailRespond
func (h *ChainHandler) AcceptChain(c *gin.Context) {
	var req request.AcceptChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.matchingSvc.AcceptChain(c.Request.Context(), req.ChainId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeclineChain 拒绝链
// POST /chain/decline
// 请求体: request.DeclineChainRequest
// 响应: respond.ChainDetailRespond
func (h *ChainHandler) DeclineChain(c *gin.Context) {
	var req request.DeclineChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.matchingSvc.DeclineChain(c.Request.Context(), req.ChainId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMyChains 获取自己参与的链
// GET /chain/mine
// 响应: []respond.ChainDetailRespond
func (h *ChainHandler) GetMyChains(c *gin.Context) {
	data, err := h.matchingSvc.GetMyChains(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetChainDetail 获取链详情
// GET /chain/:chainId
// 响应: respond.ChainDetailRespond
func (h *ChainHandler) GetChainDetail(c *gin.Context) {
	data, err := h.matchingSvc.GetChainDetail(c.Param("chainId"), c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RequestUnlock 发起联系方式解锁
// POST /chain/unlock/request
// 请求体: request.RequestUnlockRequest
// 响应: respond.UnlockStatusRespond
func (h *ChainHandler) RequestUnlock(c *gin.Context) {
	var req request.RequestUnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.matchingSvc.RequestUnlock(c.Request.Context(), req.ChainId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ApproveUnlock 批准联系方式解锁
// POST /chain/unlock/approve
// 请求体: request.ApproveUnlockRequest
// 响应: respond.UnlockStatusRespond
func (h *ChainHandler) ApproveUnlock(c *gin.Context) {
	var req request.ApproveUnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.matchingSvc.ApproveUnlock(c.Request.Context(), req.ChainId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
