// internal/services/stylist_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stylisthq/stylist-backend/internal/models"
)

// ResultCache is the slice of the cache layer the pipeline reads and writes.
// *cache.Cache satisfies it; tests substitute an in-memory double.
type ResultCache interface {
	GetQueryResult(ctx context.Context, query, userID string) *models.StylistResponse
	SetQueryResult(ctx context.Context, query, userID string, resp *models.StylistResponse) bool
	GetSearchTerms(ctx context.Context, query string) []string
	SetSearchTerms(ctx context.Context, query string, terms []string) bool
}

// StylistService is the top-level pipeline: route, check cache, retrieve,
// synthesize, assemble, write cache. It always produces a StylistResponse;
// no stage failure ever reaches the caller.
type StylistService struct {
	classifier *QueryClassifier
	retrieval  *RetrievalService
	synthesis  *SynthesisService
	cache      ResultCache
	log        *logrus.Entry
}

func NewStylistService(classifier *QueryClassifier, retrieval *RetrievalService, synthesis *SynthesisService, resultCache ResultCache) *StylistService {
	return &StylistService{
		classifier: classifier,
		retrieval:  retrieval,
		synthesis:  synthesis,
		cache:      resultCache,
		log:        logrus.WithField("component", "stylist"),
	}
}

// Process runs the optimized single-call pipeline with caching.
func (s *StylistService) Process(ctx context.Context, query *models.UserQuery, profile *models.UserProfile) (resp *models.StylistResponse) {
	start := time.Now()
	requestID := uuid.NewString()
	log := s.log.WithField("request_id", requestID)

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Pipeline panicked, returning degraded response")
			resp = s.errorResponse(requestID, query.Query, start)
		}
	}()

	intent, confidence := s.classifier.Classify(query.Query)
	log.WithFields(logrus.Fields{
		"intent":     intent,
		"confidence": confidence,
	}).Info("Query classified")

	if s.classifier.ShouldSkipProcessing(intent) {
		return s.shortCircuitResponse(requestID, query.Query, intent, start)
	}

	if cached := s.cache.GetQueryResult(ctx, query.Query, query.UserID); cached != nil {
		log.Info("Cache hit")
		// Stale correlation data is never surfaced.
		cached.ResponseID = requestID
		cached.ProcessingTimeMs = time.Since(start).Milliseconds()
		cached.CreatedAt = time.Now().UTC()
		return cached
	}

	candidates := s.retrieval.RetrieveOptimized(ctx, query, profile)
	if len(candidates) == 0 {
		log.Info("No candidates after retrieval and filtering")
		return s.emptyResponse(requestID, query.Query, "No matching products found", start)
	}

	result := s.synthesis.Synthesize(ctx, query, candidates, profile)
	resp = s.assemble(requestID, query, profile, result, start)

	s.cache.SetQueryResult(ctx, query.Query, query.UserID, resp)

	log.WithFields(logrus.Fields{
		"outfits":            len(resp.Recommendations),
		"individual_items":   len(resp.IndividualItems),
		"processing_time_ms": resp.ProcessingTimeMs,
	}).Info("Recommendation produced")

	return resp
}

// ProcessLegacy runs the multi-call pipeline: term expansion, retrieval over
// the full rerank budget, an optional rerank call, narrative synthesis.
func (s *StylistService) ProcessLegacy(ctx context.Context, query *models.UserQuery, profile *models.UserProfile) (resp *models.StylistResponse) {
	start := time.Now()
	requestID := uuid.NewString()
	log := s.log.WithField("request_id", requestID)

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Pipeline panicked, returning degraded response")
			resp = s.errorResponse(requestID, query.Query, start)
		}
	}()

	intent, _ := s.classifier.Classify(query.Query)
	if s.classifier.ShouldSkipProcessing(intent) {
		return s.shortCircuitResponse(requestID, query.Query, intent, start)
	}

	terms := s.synthesis.ExpandSearchTerms(ctx, query.Query)

	searchQuery := *query
	searchQuery.Query = strings.Join(terms, " ")

	candidates := s.retrieval.Retrieve(ctx, &searchQuery, profile)
	if len(candidates) == 0 {
		return s.emptyResponse(requestID, query.Query, "No matching products found", start)
	}

	candidates = s.synthesis.RerankCandidates(ctx, query, candidates)
	if len(candidates) > s.retrieval.cfg.FinalTopK {
		candidates = candidates[:s.retrieval.cfg.FinalTopK]
	}

	result := s.synthesis.SynthesizeLegacy(ctx, query, candidates, profile)
	return s.assemble(requestID, query, profile, result, start)
}

// StyleAdvice answers a style question without touching the catalog.
func (s *StylistService) StyleAdvice(ctx context.Context, query string, profile *models.UserProfile) string {
	return s.synthesis.StyleAdvice(ctx, query, profile)
}

func (s *StylistService) assemble(requestID string, query *models.UserQuery, profile *models.UserProfile, result *SynthesisResult, start time.Time) *models.StylistResponse {
	items := make([]models.Product, 0, 5)
	for i, ranked := range result.RankedProducts {
		if i == 5 {
			break
		}
		items = append(items, ranked.Product)
	}

	advice := result.StylingAdvice
	if advice == "" {
		advice = "Here are some pieces picked out for you."
	}

	return &models.StylistResponse{
		ResponseID:           requestID,
		UserQuery:            query.Query,
		Recommendations:      result.Outfits,
		IndividualItems:      items,
		StylingAdvice:        advice,
		PersonalizationNotes: personalizationNotes(profile),
		ProcessingTimeMs:     time.Since(start).Milliseconds(),
		CreatedAt:            time.Now().UTC(),
	}
}

func (s *StylistService) shortCircuitResponse(requestID, query string, intent models.IntentType, start time.Time) *models.StylistResponse {
	return &models.StylistResponse{
		ResponseID:       requestID,
		UserQuery:        query,
		Recommendations:  []models.OutfitRecommendation{},
		StylingAdvice:    s.classifier.CannedResponse(intent),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		CreatedAt:        time.Now().UTC(),
	}
}

func (s *StylistService) emptyResponse(requestID, query, message string, start time.Time) *models.StylistResponse {
	return &models.StylistResponse{
		ResponseID:       requestID,
		UserQuery:        query,
		Recommendations:  []models.OutfitRecommendation{},
		StylingAdvice:    message,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		CreatedAt:        time.Now().UTC(),
	}
}

func (s *StylistService) errorResponse(requestID, query string, start time.Time) *models.StylistResponse {
	return &models.StylistResponse{
		ResponseID:       requestID,
		UserQuery:        query,
		Recommendations:  []models.OutfitRecommendation{},
		StylingAdvice:    "I encountered an issue while processing your request. Please try again or rephrase your query.",
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		CreatedAt:        time.Now().UTC(),
	}
}

func personalizationNotes(profile *models.UserProfile) string {
	if profile == nil {
		return ""
	}

	var notes []string
	if profile.BodyType != nil {
		notes = append(notes, fmt.Sprintf("Recommendations tailored for %s body type", *profile.BodyType))
	}
	if prefs := profile.StylePreferences; prefs != nil && len(prefs.StylePersonalities) > 0 {
		styles := make([]string, len(prefs.StylePersonalities))
		for i, style := range prefs.StylePersonalities {
			styles[i] = string(style)
		}
		notes = append(notes, fmt.Sprintf("Focused on %s style preferences", strings.Join(styles, ", ")))
	}
	if profile.BudgetMax != nil {
		notes = append(notes, fmt.Sprintf("Within budget of $%.2f", *profile.BudgetMax))
	}

	return strings.Join(notes, ". ")
}
