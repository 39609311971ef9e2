// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylisthq/stylist-backend/internal/cache"
	"github.com/stylisthq/stylist-backend/internal/config"
	"github.com/stylisthq/stylist-backend/internal/embeddings"
	"github.com/stylisthq/stylist-backend/internal/handlers"
	"github.com/stylisthq/stylist-backend/internal/llm"
	"github.com/stylisthq/stylist-backend/internal/middleware"
	"github.com/stylisthq/stylist-backend/internal/services"
	"github.com/stylisthq/stylist-backend/internal/vectorstore"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize infrastructure
	index := vectorstore.NewStore(db, cfg.OpenAI.EmbeddingDim)
	resultCache := cache.New(cfg.Redis, cfg.Cache)
	embeddingService := embeddings.NewService(cfg.OpenAI, resultCache)
	gateway := llm.NewGateway(cfg)

	// Initialize services
	classifier := services.NewQueryClassifier()
	retrievalService := services.NewRetrievalService(index, embeddingService, cfg.Retrieval)
	synthesisService := services.NewSynthesisService(gateway, resultCache, cfg.Retrieval)
	stylistService := services.NewStylistService(classifier, retrievalService, synthesisService, resultCache)
	catalogService := services.NewCatalogService(index, embeddingService, cfg.AWS)
	retailerService := services.NewRetailerService(cfg.Retailer, index)

	// Initialize handlers
	stylistHandler := handlers.NewStylistHandler(stylistService)
	productHandler := handlers.NewProductHandler(catalogService, retrievalService)
	dataHandler := handlers.NewDataHandler(catalogService, resultCache)
	retailerHandler := handlers.NewRetailerHandler(retailerService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		count, err := catalogService.Count(c.Request.Context())
		status := "healthy"
		if err != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":        status,
			"version":       "1.0.0",
			"product_count": count,
			"llm_provider":  gateway.Name(),
			"cache_enabled": resultCache.Enabled(),
		})
	})

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Stylist routes
		stylist := v1.Group("/stylist")
		stylist.Use(middleware.StylistRateLimit())
		{
			stylist.POST("/recommend", stylistHandler.Recommend)
			stylist.POST("/recommend/optimized", stylistHandler.RecommendOptimized)
			stylist.POST("/advice", stylistHandler.Advice)
		}

		// Product catalog routes
		products := v1.Group("/products")
		{
			products.GET("/search", productHandler.Search)
			products.GET("/:id", productHandler.Get)
			products.GET("/:id/similar", productHandler.Similar)
			products.GET("/:id/outfit", productHandler.OutfitCombinations)
			products.POST("", productHandler.Create)
			products.POST("/bulk", productHandler.CreateBulk)
			products.POST("/csv", middleware.UploadRateLimit(), productHandler.UploadCSV)
			products.POST("/csv/s3", middleware.UploadRateLimit(), productHandler.IngestCSVFromS3)
			products.DELETE("/:id", productHandler.Delete)
		}

		// Data management routes
		data := v1.Group("/data")
		{
			data.POST("/initialize", dataHandler.Initialize)
			data.POST("/clear", dataHandler.Clear)
		}

		// Cache management routes
		cacheGroup := v1.Group("/cache")
		{
			cacheGroup.GET("/stats", dataHandler.CacheStats)
			cacheGroup.DELETE("/users/:user_id", dataHandler.InvalidateUserCache)
		}

		// Retailer integration routes
		retailer := v1.Group("/retailer")
		{
			retailer.POST("/interaction", retailerHandler.RecordInteraction)
			retailer.GET("/history", retailerHandler.History)
			retailer.POST("/outfit", retailerHandler.CreateOutfit)
		}
	}

	return r
}
