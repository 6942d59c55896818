package router

import (
	"github.com/trustcart/internal/config"
	storefronthandlers "github.com/trustcart/internal/http/handlers/storefront"
	"github.com/trustcart/internal/logger"
	"github.com/trustcart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	storefrontHandler := storefronthandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 店面接口（设备令牌隔离，无需账号）
		storefront := apiV1.Group("/storefront")
		storefront.Use(DeviceTokenMiddleware(cfg.DeviceToken))
		{
			storefront.POST("/search", storefrontHandler.Search)
			storefront.GET("/results", storefrontHandler.Results)

			storefront.GET("/cart", storefrontHandler.GetCart)
			storefront.POST("/cart/items", storefrontHandler.AddCartItem)
			storefront.PUT("/cart/items", storefrontHandler.UpdateCartItem)
			storefront.DELETE("/cart/items", storefrontHandler.RemoveCartItem)

			storefront.GET("/history", storefrontHandler.History)
			storefront.POST("/history/selection", storefrontHandler.CommitSelection)

			storefront.POST("/checkout", storefrontHandler.Checkout)
		}

		// 健康检查
		apiV1.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{"status": "ok"})
		})
	}

	return r
}
