// Package handler 提供 HTTP 请求处理器
// 本文件处理房源相关的 API 请求
package handler

import (
	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ListingHandler 房源请求处理器
type ListingHandler struct {
	listingSvc service.ListingService
}

// NewListingHandler 创建房源处理器实例
func NewListingHandler(listingSvc service.ListingService) *ListingHandler {
	return &ListingHandler{listingSvc: listingSvc}
}

// CreateListing 创建房源
// POST /listing/create
// 请求体: request.CreateListingRequest
// 响应: respond.ListingInfoRespond
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req request.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.listingSvc.CreateListing(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateListing 更新房源描述
// POST /listing/update
// 请求体: request.UpdateListingRequest
// 响应: respond.ListingInfoRespond
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	var req request.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.listingSvc.UpdateListing(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RenewListing 续期房源
// POST /listing/renew
// 请求体: request.RenewListingRequest
// 响应: respond.ListingInfoRespond
func (h *ListingHandler) RenewListing(c *gin.Context) {
	var req request.RenewListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.listingSvc.RenewListing(c.GetString("user_id"), req.ListingId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CloseListing 主动下架房源
// POST /listing/close
// 请求体: request.CloseListingRequest
// 响应: nil
func (h *ListingHandler) CloseListing(c *gin.Context) {
	var req request.CloseListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.listingSvc.CloseListing(c.GetString("user_id"), req.ListingId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetMyListings 获取自己的全部房源
// GET /listing/mine
// 响应: []respond.ListingInfoRespond
func (h *ListingHandler) GetMyListings(c *gin.Context) {
	data, err := h.listingSvc.GetMyListings(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetListing 获取单个房源信息
// GET /listing/:listingId
// 响应: respond.ListingInfoRespond
func (h *ListingHandler) GetListing(c *gin.Context) {
	data, err := h.listingSvc.GetListing(c.Param("listingId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
