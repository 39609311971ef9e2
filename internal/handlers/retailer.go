// internal/handlers/retailer.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stylisthq/stylist-backend/internal/models"
	"github.com/stylisthq/stylist-backend/internal/services"
	"github.com/stylisthq/stylist-backend/internal/utils"
)

type RetailerHandler struct {
	retailerService *services.RetailerService
}

func NewRetailerHandler(retailerService *services.RetailerService) *RetailerHandler {
	return &RetailerHandler{retailerService: retailerService}
}

type InteractionRequest struct {
	ProductID       string                          `json:"product_id" validate:"required"`
	UserID          string                          `json:"user_id,omitempty"`
	InteractionType models.InteractionType          `json:"interaction_type" validate:"required"`
	SessionID       string                          `json:"session_id" validate:"required"`
	Context         *services.RecommendationContext `json:"context,omitempty"`
}

type InteractionOutfitRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=2"`
}

// POST /retailer/interaction
func (h *RetailerHandler) RecordInteraction(c *gin.Context) {
	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.ValidateStruct(&req); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}
	if !req.InteractionType.Valid() {
		utils.BadRequestResponse(c, "Unknown interaction type: "+string(req.InteractionType), nil)
		return
	}

	result := h.retailerService.GetRecommendations(
		c.Request.Context(),
		req.ProductID,
		req.UserID,
		req.InteractionType,
		req.SessionID,
		req.Context,
	)

	utils.SuccessResponse(c, result)
}

// GET /retailer/history
func (h *RetailerHandler) History(c *gin.Context) {
	sessionID := c.Query("session_id")
	userID := c.Query("user_id")
	if sessionID == "" && userID == "" {
		utils.BadRequestResponse(c, "session_id or user_id is required", nil)
		return
	}

	history := h.retailerService.History(sessionID, userID)
	utils.SuccessResponseWithMeta(c, history, gin.H{"count": len(history)})
}

// POST /retailer/outfit
func (h *RetailerHandler) CreateOutfit(c *gin.Context) {
	var req InteractionOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.ValidateStruct(&req); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	outfit := h.retailerService.CreateOutfit(c.Request.Context(), req.ProductIDs)
	utils.SuccessResponse(c, outfit)
}
