// internal/handlers/data.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stylisthq/stylist-backend/internal/cache"
	"github.com/stylisthq/stylist-backend/internal/services"
	"github.com/stylisthq/stylist-backend/internal/utils"
)

type DataHandler struct {
	catalogService *services.CatalogService
	cache          *cache.Cache
}

func NewDataHandler(catalogService *services.CatalogService, resultCache *cache.Cache) *DataHandler {
	return &DataHandler{
		catalogService: catalogService,
		cache:          resultCache,
	}
}

// POST /data/initialize
func (h *DataHandler) Initialize(c *gin.Context) {
	report := h.catalogService.InitializeSampleData(c.Request.Context())
	utils.SuccessResponse(c, report)
}

// POST /data/clear
func (h *DataHandler) Clear(c *gin.Context) {
	if err := h.catalogService.Clear(c.Request.Context()); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"status": "cleared"})
}

// DELETE /cache/users/:user_id
func (h *DataHandler) InvalidateUserCache(c *gin.Context) {
	removed := h.cache.ClearUserCache(c.Request.Context(), c.Param("user_id"))
	utils.SuccessResponse(c, gin.H{
		"user_id": c.Param("user_id"),
		"removed": removed,
	})
}

// GET /cache/stats
func (h *DataHandler) CacheStats(c *gin.Context) {
	utils.SuccessResponse(c, h.cache.Stats(c.Request.Context()))
}
