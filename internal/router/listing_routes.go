// Package router 提供 HTTP 路由注册
// 本文件定义房源相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"homeswap_server/internal/infrastructure/middleware"
)

// RegisterListingRoutes 注册房源相关路由
// 所有接口都要求登录态
func (rt *Router) RegisterListingRoutes(r *gin.Engine) {
	listingGroup := r.Group("/listing")
	listingGroup.Use(middleware.JWTAuth())
	{
		// POST /listing/create - 创建房源
		listingGroup.POST("/create", rt.handlers.Listing.CreateListing)
		// POST /listing/update - 更新房源描述
		listingGroup.POST("/update", rt.handlers.Listing.UpdateListing)
		// POST /listing/renew - 续期房源
		listingGroup.POST("/renew", rt.handlers.Listing.RenewListing)
		// POST /listing/close - 主动下架房源
		listingGroup.POST("/close", rt.handlers.Listing.CloseListing)
		// GET /listing/mine - 获取自己的全部房源
		listingGroup.GET("/mine", rt.handlers.Listing.GetMyListings)
		// GET /listing/:listingId - 获取单个房源信息
		listingGroup.GET("/:listingId", rt.handlers.Listing.GetListing)
	}
}
