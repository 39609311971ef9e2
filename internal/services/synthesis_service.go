// internal/services/synthesis_service.go
package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stylisthq/stylist-backend/internal/config"
	"github.com/stylisthq/stylist-backend/internal/llm"
	"github.com/stylisthq/stylist-backend/internal/models"
)

type RankedProduct struct {
	Product models.Product `json:"product"`
	Score   float64        `json:"score"`
	Reason  string         `json:"reason,omitempty"`
}

type SynthesisResult struct {
	SearchTerms    []string                      `json:"search_terms,omitempty"`
	RankedProducts []RankedProduct               `json:"ranked_products"`
	Outfits        []models.OutfitRecommendation `json:"outfits"`
	StylingAdvice  string                        `json:"styling_advice"`
}

// SynthesisService turns a flat candidate list into ranked products, outfit
// groupings, and advice text. It never propagates an error: when the model
// call or its payload fails, a deterministic synthetic result takes over.
type SynthesisService struct {
	gateway llm.Gateway
	cache   ResultCache
	cfg     config.RetrievalConfig
	log     *logrus.Entry
}

func NewSynthesisService(gateway llm.Gateway, resultCache ResultCache, cfg config.RetrievalConfig) *SynthesisService {
	return &SynthesisService{
		gateway: gateway,
		cache:   resultCache,
		cfg:     cfg,
		log:     logrus.WithField("component", "synthesis"),
	}
}

// unifiedPayload is the structured-output contract of the single-call path.
type unifiedPayload struct {
	SearchTerms     []string `json:"search_terms"`
	ProductRankings []struct {
		ProductID string  `json:"product_id"`
		Score     float64 `json:"score"`
		Reason    string  `json:"reason"`
	} `json:"product_rankings"`
	Outfits []struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		ProductIDs  []string `json:"product_ids"`
		StylingTips []string `json:"styling_tips"`
		TotalPrice  float64  `json:"total_price"`
	} `json:"outfits"`
	StylingAdvice string `json:"styling_advice"`
}

// Synthesize is the preferred single-call strategy.
func (s *SynthesisService) Synthesize(ctx context.Context, query *models.UserQuery, candidates []models.RetrievalCandidate, profile *models.UserProfile) *SynthesisResult {
	if len(candidates) == 0 {
		return &SynthesisResult{}
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.RequestTimeout)*time.Second)
	defer cancel()

	prompt := buildUnifiedPrompt(query, candidates, profile)
	raw, err := s.gateway.CompleteJSON(callCtx, unifiedSystemPrompt, prompt, s.cfg.Temperature, s.cfg.MaxTokens)
	if err != nil {
		s.log.WithError(err).WithField("provider", s.gateway.Name()).Warn("Unified synthesis call failed, using fallback")
		return fallbackResult(candidates)
	}

	result, ok := ParseUnifiedResponse(raw, candidates)
	if !ok {
		s.log.WithField("provider", s.gateway.Name()).Warn("Unified synthesis payload unusable, using fallback")
		return fallbackResult(candidates)
	}

	return result
}

// ParseUnifiedResponse parses the structured payload against the candidate
// set. Product IDs the model invented are silently dropped; outfit totals are
// recomputed from display prices rather than trusting model arithmetic. The
// second return is false when nothing usable remains.
func ParseUnifiedResponse(raw string, candidates []models.RetrievalCandidate) (*SynthesisResult, bool) {
	var payload unifiedPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return nil, false
	}

	known := make(map[string]models.Product, len(candidates))
	for _, c := range candidates {
		known[c.Product.ProductID] = c.Product
	}

	result := &SynthesisResult{
		SearchTerms:   payload.SearchTerms,
		StylingAdvice: strings.TrimSpace(payload.StylingAdvice),
	}

	for _, ranking := range payload.ProductRankings {
		product, ok := known[ranking.ProductID]
		if !ok {
			continue
		}
		result.RankedProducts = append(result.RankedProducts, RankedProduct{
			Product: product,
			Score:   clamp01(ranking.Score),
			Reason:  ranking.Reason,
		})
	}

	for _, outfit := range payload.Outfits {
		var items []models.OutfitItem
		total := 0.0
		for _, id := range outfit.ProductIDs {
			product, ok := known[id]
			if !ok {
				continue
			}
			items = append(items, models.OutfitItem{
				Product:      product,
				RoleInOutfit: roleForCategory(product.Category),
			})
			total += product.DisplayPrice()
		}
		if len(items) == 0 {
			continue
		}

		name := outfit.Name
		if name == "" {
			name = "Curated Look"
		}

		result.Outfits = append(result.Outfits, models.OutfitRecommendation{
			OutfitID:        uuid.NewString(),
			Name:            name,
			Description:     outfit.Description,
			Items:           items,
			TotalPrice:      total,
			StylingTips:     outfit.StylingTips,
			ConfidenceScore: 0.85,
		})
	}

	if len(result.RankedProducts) == 0 && len(result.Outfits) == 0 {
		return nil, false
	}

	return result, true
}

// fallbackResult is the deterministic degraded answer: the first five
// candidates ranked at a flat score, the first three grouped into one outfit.
func fallbackResult(candidates []models.RetrievalCandidate) *SynthesisResult {
	result := &SynthesisResult{
		StylingAdvice: "Here are some great options for you. Feel free to mix and match!",
	}

	for i, c := range candidates {
		if i == 5 {
			break
		}
		result.RankedProducts = append(result.RankedProducts, RankedProduct{
			Product: c.Product,
			Score:   0.7,
		})
	}

	var items []models.OutfitItem
	total := 0.0
	for i, c := range candidates {
		if i == 3 {
			break
		}
		items = append(items, models.OutfitItem{
			Product:      c.Product,
			RoleInOutfit: roleForCategory(c.Product.Category),
		})
		total += c.Product.DisplayPrice()
	}

	if len(items) > 0 {
		result.Outfits = append(result.Outfits, models.OutfitRecommendation{
			OutfitID:        uuid.NewString(),
			Name:            "Suggested Look",
			Description:     "A versatile outfit combination",
			Items:           items,
			TotalPrice:      total,
			StylingTips:     []string{"Mix and match as desired"},
			ConfidenceScore: 0.7,
		})
	}

	return result
}

// ExpandSearchTerms is the first call of the legacy multi-call strategy.
// Failures fall back to the raw query so retrieval still proceeds.
func (s *SynthesisService) ExpandSearchTerms(ctx context.Context, query string) []string {
	if s.cache != nil {
		if terms := s.cache.GetSearchTerms(ctx, query); len(terms) > 0 {
			return terms
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.RequestTimeout)*time.Second)
	defer cancel()

	raw, err := s.gateway.Complete(callCtx, stylistSystemPrompt, buildSearchExpansionPrompt(query), s.cfg.Temperature, 200)
	if err != nil {
		s.log.WithError(err).Warn("Search term expansion failed, using raw query")
		return []string{query}
	}

	var terms []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-•*0123456789. "))
		if line == "" {
			continue
		}
		terms = append(terms, line)
		if len(terms) == 10 {
			break
		}
	}
	if len(terms) == 0 {
		return []string{query}
	}

	if s.cache != nil {
		s.cache.SetSearchTerms(ctx, query, terms)
	}

	return terms
}

// RerankCandidates is the optional second call of the legacy strategy, used
// only when the candidate list exceeds the final budget. Products the model
// omits keep their retrieval order and are appended after the ranked ones.
func (s *SynthesisService) RerankCandidates(ctx context.Context, query *models.UserQuery, candidates []models.RetrievalCandidate) []models.RetrievalCandidate {
	if len(candidates) <= s.cfg.FinalTopK {
		return candidates
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.RequestTimeout)*time.Second)
	defer cancel()

	raw, err := s.gateway.Complete(callCtx, stylistSystemPrompt, buildRerankPrompt(query, candidates), 0.3, 500)
	if err != nil {
		s.log.WithError(err).Warn("Rerank call failed, keeping retrieval order")
		return candidates
	}

	byID := make(map[string]models.RetrievalCandidate, len(candidates))
	for _, c := range candidates {
		byID[c.Product.ProductID] = c
	}

	seen := make(map[string]struct{}, len(candidates))
	reranked := make([]models.RetrievalCandidate, 0, len(candidates))
	for _, line := range strings.Split(raw, "\n") {
		id := strings.TrimSpace(strings.TrimLeft(line, "-•*0123456789. "))
		candidate, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		reranked = append(reranked, candidate)
	}

	for _, c := range candidates {
		if _, ok := seen[c.Product.ProductID]; !ok {
			reranked = append(reranked, c)
		}
	}

	return reranked
}

// SynthesizeLegacy generates a free-text outfit narrative and heuristically
// parses it into structured outfits.
func (s *SynthesisService) SynthesizeLegacy(ctx context.Context, query *models.UserQuery, candidates []models.RetrievalCandidate, profile *models.UserProfile) *SynthesisResult {
	if len(candidates) == 0 {
		return &SynthesisResult{}
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.RequestTimeout)*time.Second)
	defer cancel()

	narrative, err := s.gateway.Complete(callCtx, stylistSystemPrompt, buildNarrativePrompt(query, candidates, profile), s.cfg.Temperature, s.cfg.MaxTokens)
	if err != nil {
		s.log.WithError(err).WithField("provider", s.gateway.Name()).Warn("Narrative synthesis call failed, using fallback")
		return fallbackResult(candidates)
	}

	products := make([]models.Product, len(candidates))
	for i, c := range candidates {
		products[i] = c.Product
	}

	outfits := ParseOutfitNarrative(narrative, products)
	if len(outfits) == 0 {
		if outfit := defaultOutfit(products); outfit != nil {
			outfits = append(outfits, *outfit)
		}
	}

	result := &SynthesisResult{
		Outfits:       outfits,
		StylingAdvice: narrative,
	}
	for _, c := range candidates {
		result.RankedProducts = append(result.RankedProducts, RankedProduct{
			Product: c.Product,
			Score:   clamp01(c.Score),
		})
	}

	return result
}

// StyleAdvice answers a free-text style question without retrieval.
func (s *SynthesisService) StyleAdvice(ctx context.Context, query string, profile *models.UserProfile) string {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.RequestTimeout)*time.Second)
	defer cancel()

	advice, err := s.gateway.Complete(callCtx, stylistSystemPrompt, buildAdvicePrompt(query, profile), s.cfg.Temperature, 600)
	if err != nil {
		s.log.WithError(err).Warn("Style advice call failed, using fallback")
		return "I'd be happy to help with your style question. Please try rephrasing or provide more details."
	}

	return strings.TrimSpace(advice)
}

// ParseOutfitNarrative splits free-form narrative on the literal marker
// "Outfit" and matches products referenced by ID or name in each section.
// It is a pure function over the narrative text.
func ParseOutfitNarrative(narrative string, products []models.Product) []models.OutfitRecommendation {
	sections := strings.Split(narrative, "Outfit")
	if len(sections) < 2 {
		return nil
	}

	var outfits []models.OutfitRecommendation
	for i, section := range sections[1:] {
		var items []models.OutfitItem
		total := 0.0
		for idx := range products {
			p := &products[idx]
			if !strings.Contains(section, p.ProductID) && !strings.Contains(section, p.Name) {
				continue
			}
			items = append(items, models.OutfitItem{
				Product:      *p,
				StylingNotes: "Part of this look",
				RoleInOutfit: roleForCategory(p.Category),
			})
			total += p.DisplayPrice()
		}
		if len(items) == 0 {
			continue
		}

		description := strings.TrimSpace(section)
		if len(description) > 200 {
			cut := 200
			for cut > 0 && !utf8.RuneStart(description[cut]) {
				cut--
			}
			description = description[:cut]
		}

		outfits = append(outfits, models.OutfitRecommendation{
			OutfitID:        uuid.NewString(),
			Name:            "Outfit " + strconv.Itoa(i+1),
			Description:     description,
			Items:           items,
			TotalPrice:      total,
			StylingTips:     extractStylingTips(section),
			ConfidenceScore: 0.85,
		})
	}

	return outfits
}

var tipKeywords = []string{"tip", "style", "wear", "pair", "add"}

// extractStylingTips pulls tip-flavored lines out of a narrative section,
// capped at three.
func extractStylingTips(text string) []string {
	var tips []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		matched := false
		for _, kw := range tipKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched || len(line) <= 10 || len(line) >= 200 {
			continue
		}

		tips = append(tips, strings.Trim(line, "-• "))
		if len(tips) == 3 {
			break
		}
	}

	if len(tips) == 0 {
		return []string{"Style with confidence"}
	}
	return tips
}

// defaultOutfit fabricates one grouping from the first three products when
// narrative parsing finds nothing.
func defaultOutfit(products []models.Product) *models.OutfitRecommendation {
	if len(products) == 0 {
		return nil
	}
	if len(products) > 3 {
		products = products[:3]
	}

	var items []models.OutfitItem
	total := 0.0
	for _, p := range products {
		items = append(items, models.OutfitItem{
			Product:      p,
			StylingNotes: "Versatile piece for various occasions",
			RoleInOutfit: roleForCategory(p.Category),
		})
		total += p.DisplayPrice()
	}

	return &models.OutfitRecommendation{
		OutfitID:    uuid.NewString(),
		Name:        "Recommended Style",
		Description: "A versatile outfit combination based on your preferences",
		Items:       items,
		TotalPrice:  total,
		StylingTips: []string{
			"These pieces work well together",
			"Can be dressed up or down depending on accessories",
			"Perfect for multiple occasions",
		},
		ConfidenceScore: 0.7,
	}
}

var roleMap = map[models.Category]string{
	models.CategoryTops:        "Top",
	models.CategoryBottoms:     "Bottom",
	models.CategoryDresses:     "Main Piece",
	models.CategoryOuterwear:   "Layer",
	models.CategoryShoes:       "Footwear",
	models.CategoryAccessories: "Accent",
	models.CategoryBags:        "Bag",
	models.CategoryJewelry:     "Jewelry",
}

func roleForCategory(category models.Category) string {
	if role, ok := roleMap[category]; ok {
		return role
	}
	return "Item"
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
