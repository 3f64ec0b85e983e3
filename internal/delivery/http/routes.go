package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bluepin/backend/config"
	"github.com/bluepin/backend/internal/infrastructure/cache"
	"github.com/bluepin/backend/internal/infrastructure/monitoring/metrics"
)

// SetupRouter creates and configures the Gin router. m may be nil to disable
// the metrics endpoint; limiters backs per-IP rate limiting.
func SetupRouter(cfg *config.Config, handler *Handler, m *metrics.Metrics, limiters *cache.MemoryCache) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Identifiers may contain "/", sent as %2F
	router.UseRawPath = true
	router.UnescapePathValues = true

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(handler.logger))
	router.Use(LoggerMiddleware(handler.logger, "/health", "/metrics"))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if m != nil {
		router.Use(MetricsMiddleware(m))
	}

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, limiters))
	{
		v1.GET("/stats", handler.Stats)
		v1.GET("/search", handler.Search)
		v1.GET("/filter-options", handler.FilterOptions)

		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:id", handler.GetProduct)
			products.GET("/:id/analysis", handler.ProductAnalysis)
			products.GET("/:id/suppliers", handler.ProductSuppliers)
			products.GET("/:id/comparison", handler.ProductComparison)
		}

		v1.GET("/suppliers", handler.ListSuppliers)

		v1.GET("/top-products", handler.TopProducts)
		v1.GET("/top-suppliers", handler.TopSuppliers)
		v1.GET("/top-potential", handler.TopPotential)
		v1.GET("/categories", handler.Categories)
		v1.GET("/price-distribution", handler.PriceDistribution)
		v1.GET("/rating-distribution", handler.RatingDistribution)
		v1.GET("/score-distribution", handler.ScoreDistribution)
		v1.GET("/location-stats", handler.LocationStats)

		charts := v1.Group("/charts")
		{
			charts.GET("/products", handler.ProductCharts)
			charts.GET("/suppliers", handler.SupplierCharts)
		}

		compare := v1.Group("/compare")
		{
			compare.GET("/products", handler.CompareProducts)
			compare.GET("/suppliers", handler.CompareSuppliers)
		}

		wishlist := v1.Group("/wishlist", RequireUserMiddleware())
		{
			wishlist.GET("", handler.ListWishlist)
			wishlist.POST("", handler.AddToWishlist)
			wishlist.DELETE("/:id", handler.RemoveFromWishlist)
			wishlist.DELETE("", handler.ClearWishlist)
		}

		admin := v1.Group("/admin", AdminAuthMiddleware(cfg.Admin.Token))
		{
			admin.GET("/status", handler.AdminStatus)
			admin.POST("/refresh", handler.AdminRefresh)
		}
	}

	return router
}
