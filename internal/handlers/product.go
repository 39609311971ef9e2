// internal/handlers/product.go
package handlers

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stylisthq/stylist-backend/internal/models"
	"github.com/stylisthq/stylist-backend/internal/services"
	"github.com/stylisthq/stylist-backend/internal/utils"
	"github.com/stylisthq/stylist-backend/internal/vectorstore"
)

type ProductHandler struct {
	catalogService   *services.CatalogService
	retrievalService *services.RetrievalService
}

func NewProductHandler(catalogService *services.CatalogService, retrievalService *services.RetrievalService) *ProductHandler {
	return &ProductHandler{
		catalogService:   catalogService,
		retrievalService: retrievalService,
	}
}

// GET /products/search
func (h *ProductHandler) Search(c *gin.Context) {
	queryText := c.Query("q")
	if queryText == "" {
		utils.BadRequestResponse(c, "Query parameter 'q' is required", nil)
		return
	}

	query := models.UserQuery{Query: queryText}

	if category := c.Query("category"); category != "" {
		parsed := models.Category(category)
		if !parsed.Valid() {
			utils.BadRequestResponse(c, "Unknown category: "+category, nil)
			return
		}
		query.PreferredCategories = []models.Category{parsed}
	}

	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil && maxPrice > 0 {
			query.Budget = &maxPrice
		}
	}

	topK := 10
	if topKStr := c.Query("top_k"); topKStr != "" {
		if parsed, err := strconv.Atoi(topKStr); err == nil && parsed > 0 && parsed <= 50 {
			topK = parsed
		}
	}

	candidates := h.retrievalService.RetrieveTopK(c.Request.Context(), &query, nil, topK)

	products := make([]models.Product, 0, len(candidates))
	for _, candidate := range candidates {
		products = append(products, candidate.Product)
	}

	utils.SuccessResponseWithMeta(c, products, gin.H{"count": len(products)})
}

// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == vectorstore.ErrNotFound {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, product)
}

// GET /products/:id/similar
func (h *ProductHandler) Similar(c *gin.Context) {
	topK := 5
	if topKStr := c.Query("top_k"); topKStr != "" {
		if parsed, err := strconv.Atoi(topKStr); err == nil && parsed > 0 && parsed <= 20 {
			topK = parsed
		}
	}

	products := h.retrievalService.FindSimilar(c.Request.Context(), c.Param("id"), topK)
	if products == nil {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /products/:id/outfit
func (h *ProductHandler) OutfitCombinations(c *gin.Context) {
	combos := h.retrievalService.OutfitCombinations(c.Request.Context(), c.Param("id"))
	if combos == nil {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{"combinations": combos})
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.catalogService.AddProduct(c.Request.Context(), &product); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"product_id": product.ProductID})
}

// POST /products/bulk
func (h *ProductHandler) CreateBulk(c *gin.Context) {
	var products []models.Product
	if err := c.ShouldBindJSON(&products); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if len(products) == 0 {
		utils.BadRequestResponse(c, "No products provided", nil)
		return
	}

	report := h.catalogService.AddProducts(c.Request.Context(), products)
	utils.SuccessResponse(c, report)
}

// POST /products/csv
// The upload is indexed in the background; embedding a large catalog can
// take longer than a request should hold.
func (h *ProductHandler) UploadCSV(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "CSV file is required under form field 'file'", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read upload")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		report, err := h.catalogService.IngestCSV(ctx, bytes.NewReader(data))
		if err != nil {
			logrus.WithError(err).WithField("filename", header.Filename).Error("CSV ingestion failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"filename": header.Filename,
			"added":    report.Added,
			"failed":   report.Failed,
		}).Info("CSV ingestion complete")
	}()

	utils.AcceptedResponse(c, gin.H{
		"status":   "processing",
		"filename": header.Filename,
	})
}

type S3IngestRequest struct {
	Key string `json:"key" validate:"required"`
}

// POST /products/csv/s3
func (h *ProductHandler) IngestCSVFromS3(c *gin.Context) {
	var req S3IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		utils.BadRequestResponse(c, "S3 object key is required", nil)
		return
	}

	report, err := h.catalogService.IngestCSVFromS3(c.Request.Context(), req.Key)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, report)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": c.Param("id")})
}
