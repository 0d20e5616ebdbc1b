package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vegist/backend/config"
	"github.com/vegist/backend/internal/infrastructure/logger"
)

// SetupRouter creates and configures the Gin router. gatherer backs /metrics and may
// be nil, in which case the endpoint is not registered.
func SetupRouter(cfg *config.Config, handler *Handler, logg *logger.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logg))
	router.Use(RequestIDMiddleware(logg))
	router.Use(LoggerMiddleware(logg))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, logg))
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/facets", handler.Facets)
			products.GET("/:id", handler.GetProduct)
			products.POST("/:id/quote", handler.QuotePrice)
		}

		carts := v1.Group("/carts/:session")
		{
			carts.GET("", handler.GetCart)
			carts.DELETE("", handler.ClearCart)
			carts.POST("/items", handler.AddCartItem)
			carts.PATCH("/items/:itemId", handler.UpdateCartItem)
			carts.DELETE("/items/:itemId", handler.RemoveCartItem)
		}

		wishlists := v1.Group("/wishlists/:session")
		{
			wishlists.GET("", handler.GetWishlist)
			wishlists.DELETE("", handler.ClearWishlist)
			wishlists.POST("/items", handler.AddWishlistItem)
			wishlists.DELETE("/items/:productId", handler.RemoveWishlistItem)
		}
	}

	return router
}
