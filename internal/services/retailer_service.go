// internal/services/retailer_service.go
package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stylisthq/stylist-backend/internal/config"
	"github.com/stylisthq/stylist-backend/internal/models"
	"github.com/stylisthq/stylist-backend/internal/vectorstore"
)

// RetailerService bridges chat interactions (click, like, add to cart) to the
// retailer's own recommendation system. Without a configured API it serves
// deterministic mock recommendations so the flow stays testable.
type RetailerService struct {
	cfg    config.RetailerConfig
	client *http.Client
	index  vectorstore.Index
	log    *logrus.Entry

	// Bounded, time-ordered interaction log keyed by (session, product).
	// Oldest entries are evicted once capacity is reached.
	mtx     sync.Mutex
	entries []models.Interaction
	byKey   map[string]int
}

type RecommendationContext struct {
	Categories      []string           `json:"categories,omitempty"`
	PriceMin        *float64           `json:"price_min,omitempty"`
	PriceMax        *float64           `json:"price_max,omitempty"`
	Occasion        *models.Occasion   `json:"occasion,omitempty"`
	StylePreference string             `json:"style_preference,omitempty"`
	Limit           int                `json:"limit,omitempty"`
}

func NewRetailerService(cfg config.RetailerConfig, index vectorstore.Index) *RetailerService {
	maxEntries := cfg.MaxLogEntries
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	cfg.MaxLogEntries = maxEntries

	return &RetailerService{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second},
		index:  index,
		log:    logrus.WithField("component", "retailer"),
		byKey:  make(map[string]int),
	}
}

// GetRecommendations records the interaction and returns recommendations from
// the retailer API, or mock ones when no API is configured. Errors produce an
// error-status result, never a failure to the caller.
func (s *RetailerService) GetRecommendations(ctx context.Context, productID, userID string, interactionType models.InteractionType, sessionID string, recCtx *RecommendationContext) *models.RetailerRecommendationResult {
	interaction := s.recordInteraction(productID, userID, interactionType, sessionID)

	var (
		recommendations []models.RetailerRecommendation
		source          string
	)

	if s.cfg.APIURL != "" {
		recommendations = s.fetchExternal(ctx, productID, userID, recCtx)
		source = "retailer_api"
	} else {
		recommendations = s.mockRecommendations(productID, interactionType, recCtx)
		source = "mock"
	}

	recommendations = s.enhance(recommendations, interactionType, recCtx)

	return &models.RetailerRecommendationResult{
		Status:          "success",
		Interaction:     &interaction,
		Recommendations: recommendations,
		Source:          source,
		SessionID:       sessionID,
		Timestamp:       time.Now().UTC(),
	}
}

func (s *RetailerService) recordInteraction(productID, userID string, interactionType models.InteractionType, sessionID string) models.Interaction {
	if userID == "" {
		userID = "anonymous"
	}

	interaction := models.Interaction{
		ProductID: productID,
		UserID:    userID,
		Type:      interactionType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	}

	key := sessionID + ":" + productID

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if idx, ok := s.byKey[key]; ok {
		s.entries[idx] = interaction
		return interaction
	}

	if len(s.entries) >= s.cfg.MaxLogEntries {
		evicted := s.entries[0]
		s.entries = s.entries[1:]
		delete(s.byKey, evicted.SessionID+":"+evicted.ProductID)
		for k := range s.byKey {
			s.byKey[k]--
		}
	}

	s.entries = append(s.entries, interaction)
	s.byKey[key] = len(s.entries) - 1

	return interaction
}

// History returns recorded interactions for a session or user, newest first.
func (s *RetailerService) History(sessionID, userID string) []models.Interaction {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var history []models.Interaction
	for _, entry := range s.entries {
		if (sessionID != "" && entry.SessionID == sessionID) || (userID != "" && entry.UserID == userID) {
			history = append(history, entry)
		}
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})

	return history
}

func (s *RetailerService) fetchExternal(ctx context.Context, productID, userID string, recCtx *RecommendationContext) []models.RetailerRecommendation {
	params := url.Values{}
	params.Set("product_id", productID)

	limit := 10
	if recCtx != nil && recCtx.Limit > 0 {
		limit = recCtx.Limit
	}
	params.Set("limit", strconv.Itoa(limit))

	if userID != "" {
		params.Set("user_id", userID)
	}
	if recCtx != nil {
		if len(recCtx.Categories) > 0 {
			params.Set("categories", strings.Join(recCtx.Categories, ","))
		}
		if recCtx.PriceMin != nil {
			params.Set("min_price", fmt.Sprintf("%.2f", *recCtx.PriceMin))
		}
		if recCtx.PriceMax != nil {
			params.Set("max_price", fmt.Sprintf("%.2f", *recCtx.PriceMax))
		}
	}

	endpoint := strings.TrimRight(s.cfg.APIURL, "/") + "/recommendations?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		s.log.WithError(err).Error("Failed to build retailer API request")
		return nil
	}
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WithError(err).Warn("Retailer API request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.WithField("status", resp.StatusCode).Warn("Retailer API returned non-200")
		return nil
	}

	var body struct {
		Recommendations []models.RetailerRecommendation `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		s.log.WithError(err).Warn("Failed to decode retailer API response")
		return nil
	}

	return body.Recommendations
}

var recommendationTypes = map[models.InteractionType][]string{
	models.InteractionClick:       {"similar_style", "same_category", "frequently_bought"},
	models.InteractionLike:        {"similar_style", "complementary", "trending"},
	models.InteractionAddToCart:   {"frequently_bought", "complementary", "bundle"},
	models.InteractionViewDetails: {"similar_style", "same_brand", "price_similar"},
}

// mockRecommendations are deterministic per product so tests and demo
// environments behave identically run to run.
func (s *RetailerService) mockRecommendations(productID string, interactionType models.InteractionType, recCtx *RecommendationContext) []models.RetailerRecommendation {
	sum := md5.Sum([]byte(productID))
	seed, _ := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 64)

	recType := "similar_style"
	if types, ok := recommendationTypes[interactionType]; ok {
		recType = types[0]
	}

	category := "general"
	if recCtx != nil && len(recCtx.Categories) > 0 {
		category = recCtx.Categories[0]
	}

	recommendations := make([]models.RetailerRecommendation, 0, 5)
	for i := 0; i < 5; i++ {
		recommendations = append(recommendations, models.RetailerRecommendation{
			ProductID: fmt.Sprintf("REC_%s_%d", productID, i),
			Name:      fmt.Sprintf("Recommended Item %d", i+1),
			Reason:    fmt.Sprintf("Based on your %s of similar items", interactionType),
			Type:      recType,
			Score:     0.95 - float64(i)*0.1,
			Price:     float64(50 + seed%100 + uint64(i)*10),
			Category:  category,
		})
	}

	return recommendations
}

// enhance annotates recommendations with styling notes and an
// outfit-potential score, then orders them by (potential, score) descending.
func (s *RetailerService) enhance(recommendations []models.RetailerRecommendation, interactionType models.InteractionType, recCtx *RecommendationContext) []models.RetailerRecommendation {
	for i := range recommendations {
		switch interactionType {
		case models.InteractionLike:
			recommendations[i].StylingNote = "This piece would pair beautifully with your liked item"
		case models.InteractionClick:
			recommendations[i].StylingNote = "Customers who viewed this also loved this piece"
		case models.InteractionAddToCart:
			recommendations[i].StylingNote = "Complete the look with this complementary piece"
		}

		recommendations[i].OutfitPotential = outfitPotential(&recommendations[i], recCtx)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].OutfitPotential != recommendations[j].OutfitPotential {
			return recommendations[i].OutfitPotential > recommendations[j].OutfitPotential
		}
		return recommendations[i].Score > recommendations[j].Score
	})

	return recommendations
}

func outfitPotential(rec *models.RetailerRecommendation, recCtx *RecommendationContext) float64 {
	score := 0.5

	switch rec.Type {
	case "complementary":
		score += 0.3
	case "frequently_bought":
		score += 0.2
	}

	if recCtx != nil {
		if recCtx.Occasion != nil && rec.Occasion == string(*recCtx.Occasion) {
			score += 0.1
		}
		if recCtx.StylePreference != "" && rec.Style == recCtx.StylePreference {
			score += 0.1
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// CreateOutfit assembles an outfit from products the user interacted with,
// hydrating details from the vector index where the product is known.
func (s *RetailerService) CreateOutfit(ctx context.Context, productIDs []string) *models.InteractionOutfit {
	items := make([]models.Product, 0, len(productIDs))
	total := 0.0

	for _, id := range productIDs {
		if rec, err := s.index.Fetch(ctx, id); err == nil {
			items = append(items, rec.Product)
			total += rec.Product.DisplayPrice()
			continue
		}

		// Unknown to the catalog; keep the reference so the outfit still
		// reflects everything the user picked.
		placeholder := models.Product{
			ProductID: id,
			Name:      "Product " + id,
			Category:  models.CategoryTops,
			Price:     75.00,
			InStock:   true,
		}
		items = append(items, placeholder)
		total += placeholder.Price
	}

	material, _ := json.Marshal(productIDs)
	sum := md5.Sum(material)

	return &models.InteractionOutfit{
		OutfitID:           hex.EncodeToString(sum[:])[:8],
		Items:              items,
		TotalPrice:         total,
		CreatedFrom:        "user_interactions",
		CompatibilityScore: 0.85,
	}
}
