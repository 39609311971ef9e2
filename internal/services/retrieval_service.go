// internal/services/retrieval_service.go
package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stylisthq/stylist-backend/internal/config"
	"github.com/stylisthq/stylist-backend/internal/embeddings"
	"github.com/stylisthq/stylist-backend/internal/models"
	"github.com/stylisthq/stylist-backend/internal/vectorstore"
)

// RetrievalService produces a bounded, filtered candidate list from free
// query text. Any failure yields an empty list, logged, never an error:
// the orchestrator treats empty candidates as "no matches", not a fault.
type RetrievalService struct {
	index      vectorstore.Index
	embeddings *embeddings.Service
	cfg        config.RetrievalConfig
	log        *logrus.Entry
}

func NewRetrievalService(index vectorstore.Index, emb *embeddings.Service, cfg config.RetrievalConfig) *RetrievalService {
	return &RetrievalService{
		index:      index,
		embeddings: emb,
		cfg:        cfg,
		log:        logrus.WithField("component", "retrieval"),
	}
}

// Retrieve runs the default path bounded by the configured rerank budget.
func (s *RetrievalService) Retrieve(ctx context.Context, query *models.UserQuery, profile *models.UserProfile) []models.RetrievalCandidate {
	return s.RetrieveTopK(ctx, query, profile, s.cfg.RerankTopK)
}

// RetrieveOptimized uses the smaller candidate budget of the single-call
// synthesis path.
func (s *RetrievalService) RetrieveOptimized(ctx context.Context, query *models.UserQuery, profile *models.UserProfile) []models.RetrievalCandidate {
	topK := s.cfg.OptimizedTopK
	if s.cfg.RerankTopK < topK {
		topK = s.cfg.RerankTopK
	}
	return s.RetrieveTopK(ctx, query, profile, topK)
}

func (s *RetrievalService) RetrieveTopK(ctx context.Context, query *models.UserQuery, profile *models.UserProfile, topK int) []models.RetrievalCandidate {
	filter := s.buildFilter(query, profile)

	vector := s.embeddings.Embed(ctx, query.Query)

	hits, err := s.index.Query(ctx, vector, topK, filter)
	if err != nil {
		s.log.WithError(err).Error("Vector query failed, returning no candidates")
		return nil
	}

	candidates := s.applyBusinessRules(hits, query, profile)

	limit := s.cfg.FinalTopK
	if query.MaxResults > 0 && query.MaxResults < limit {
		limit = query.MaxResults
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates
}

// buildFilter maps query constraints onto what the index can filter natively.
func (s *RetrievalService) buildFilter(query *models.UserQuery, profile *models.UserProfile) vectorstore.Filter {
	inStock := true
	filter := vectorstore.Filter{InStock: &inStock}

	if len(query.PreferredCategories) > 0 {
		categories := make([]string, len(query.PreferredCategories))
		for i, c := range query.PreferredCategories {
			categories[i] = string(c)
		}
		filter.Categories = categories
	}

	if profile != nil && profile.StylePreferences != nil && len(profile.StylePreferences.PreferredBrands) > 0 {
		filter.Brands = profile.StylePreferences.PreferredBrands
	}

	if maxPrice := budgetCeiling(query, profile); maxPrice != nil {
		filter.MaxPrice = maxPrice
	}

	if !query.SaleItemsAllowed() {
		filter.ExcludeSale = true
	}

	return filter
}

// budgetCeiling takes the tighter of the query budget and the profile budget.
func budgetCeiling(query *models.UserQuery, profile *models.UserProfile) *float64 {
	var ceiling *float64
	if query.Budget != nil {
		ceiling = query.Budget
	}
	if profile != nil && profile.BudgetMax != nil {
		if ceiling == nil || *profile.BudgetMax < *ceiling {
			ceiling = profile.BudgetMax
		}
	}
	return ceiling
}

// applyBusinessRules enforces constraints the index filter grammar cannot
// express: excluded categories, the display-price ceiling, and the
// color-preference intersection.
func (s *RetrievalService) applyBusinessRules(hits []vectorstore.Hit, query *models.UserQuery, profile *models.UserProfile) []models.RetrievalCandidate {
	excluded := make(map[models.Category]struct{}, len(query.ExcludedCategories))
	for _, c := range query.ExcludedCategories {
		excluded[c] = struct{}{}
	}

	ceiling := budgetCeiling(query, profile)

	candidates := make([]models.RetrievalCandidate, 0, len(hits))
	for _, hit := range hits {
		if _, skip := excluded[hit.Product.Category]; skip {
			continue
		}

		// The index filters on stored price, but the ceiling binds on the
		// display price, which is always recomputed.
		if ceiling != nil && hit.Product.DisplayPrice() > *ceiling {
			continue
		}

		if !matchesColorPreference(&hit.Product, query.ColorPreferences) {
			continue
		}

		candidates = append(candidates, models.RetrievalCandidate{
			Product:  hit.Product,
			Score:    1.0 - hit.Distance,
			Document: hit.Document,
		})
	}

	return candidates
}

// matchesColorPreference requires at least one shared color when the query
// names colors. Products with no listed colors pass: a permissive default.
func matchesColorPreference(p *models.Product, preferred []string) bool {
	if len(preferred) == 0 || len(p.Attributes.Colors) == 0 {
		return true
	}

	for _, want := range preferred {
		for _, have := range p.Attributes.Colors {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

// FindSimilar returns the nearest neighbors of a stored product, excluding
// the product itself.
func (s *RetrievalService) FindSimilar(ctx context.Context, productID string, topK int) []models.Product {
	rec, err := s.index.Fetch(ctx, productID)
	if err != nil {
		s.log.WithError(err).WithField("product_id", productID).Warn("Similar-item lookup failed")
		return nil
	}

	hits, err := s.index.Query(ctx, rec.Embedding, topK+1, vectorstore.Filter{})
	if err != nil {
		s.log.WithError(err).Error("Similar-item vector query failed")
		return nil
	}

	products := make([]models.Product, 0, topK)
	for _, hit := range hits {
		if hit.Product.ProductID == productID {
			continue
		}
		products = append(products, hit.Product)
		if len(products) == topK {
			break
		}
	}

	return products
}

var complementaryCategories = map[models.Category][]models.Category{
	models.CategoryTops:        {models.CategoryBottoms, models.CategoryOuterwear, models.CategoryShoes, models.CategoryAccessories},
	models.CategoryBottoms:     {models.CategoryTops, models.CategoryOuterwear, models.CategoryShoes, models.CategoryAccessories},
	models.CategoryDresses:     {models.CategoryOuterwear, models.CategoryShoes, models.CategoryAccessories, models.CategoryJewelry, models.CategoryBags},
	models.CategoryOuterwear:   {models.CategoryTops, models.CategoryBottoms, models.CategoryDresses, models.CategoryShoes},
	models.CategoryShoes:       {models.CategoryTops, models.CategoryBottoms, models.CategoryDresses},
	models.CategoryAccessories: {models.CategoryTops, models.CategoryBottoms, models.CategoryDresses},
	models.CategoryBags:        {models.CategoryTops, models.CategoryBottoms, models.CategoryDresses},
	models.CategoryJewelry:     {models.CategoryTops, models.CategoryBottoms, models.CategoryDresses},
}

// OutfitCombinations builds up to three product groupings around an anchor
// product by pulling the nearest in-stock item from each complementary
// category.
func (s *RetrievalService) OutfitCombinations(ctx context.Context, productID string) [][]models.Product {
	rec, err := s.index.Fetch(ctx, productID)
	if err != nil {
		s.log.WithError(err).WithField("product_id", productID).Warn("Outfit combination lookup failed")
		return nil
	}

	anchor := rec.Product
	inStock := true

	perCategory := make(map[models.Category][]models.Product)
	for _, category := range complementaryCategories[anchor.Category] {
		hits, err := s.index.Query(ctx, rec.Embedding, 3, vectorstore.Filter{
			Categories: []string{string(category)},
			InStock:    &inStock,
		})
		if err != nil {
			s.log.WithError(err).Warn("Complementary category query failed")
			continue
		}
		for _, hit := range hits {
			if hit.Product.ProductID != anchor.ProductID {
				perCategory[category] = append(perCategory[category], hit.Product)
			}
		}
	}

	if len(perCategory) == 0 {
		return nil
	}

	var combos [][]models.Product
	for i := 0; i < 3; i++ {
		combo := []models.Product{anchor}
		fresh := false
		for _, category := range complementaryCategories[anchor.Category] {
			options := perCategory[category]
			if len(options) == 0 {
				continue
			}
			if i < len(options) {
				fresh = true
				combo = append(combo, options[i])
			} else {
				combo = append(combo, options[len(options)-1])
			}
		}
		if len(combo) < 2 || (i > 0 && !fresh) {
			break
		}
		combos = append(combos, combo)
	}

	return combos
}
