// internal/handlers/stylist.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stylisthq/stylist-backend/internal/models"
	"github.com/stylisthq/stylist-backend/internal/services"
	"github.com/stylisthq/stylist-backend/internal/utils"
)

type StylistHandler struct {
	stylistService *services.StylistService
}

func NewStylistHandler(stylistService *services.StylistService) *StylistHandler {
	return &StylistHandler{stylistService: stylistService}
}

type RecommendRequest struct {
	models.UserQuery
	Profile *models.UserProfile `json:"profile,omitempty"`
}

type AdviceRequest struct {
	Query   string              `json:"query" validate:"required,min=1,max=1000"`
	Profile *models.UserProfile `json:"profile,omitempty"`
}

// POST /stylist/recommend
func (h *StylistHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.ValidateStruct(&req.UserQuery); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	response := h.stylistService.ProcessLegacy(c.Request.Context(), &req.UserQuery, req.Profile)
	utils.SuccessResponse(c, response)
}

// POST /stylist/recommend/optimized
func (h *StylistHandler) RecommendOptimized(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.ValidateStruct(&req.UserQuery); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	response := h.stylistService.Process(c.Request.Context(), &req.UserQuery, req.Profile)
	utils.SuccessResponse(c, response)
}

// POST /stylist/advice
func (h *StylistHandler) Advice(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.ValidateStruct(&req); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	advice := h.stylistService.StyleAdvice(c.Request.Context(), req.Query, req.Profile)
	utils.SuccessResponse(c, gin.H{"advice": advice})
}
