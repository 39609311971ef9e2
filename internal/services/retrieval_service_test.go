// internal/services/retrieval_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylisthq/stylist-backend/internal/models"
	"github.com/stylisthq/stylist-backend/internal/vectorstore"
)

func seedIndex(t *testing.T, index *memoryIndex, products []models.Product) {
	t.Helper()
	ctx := context.Background()
	for _, p := range products {
		require.NoError(t, index.Upsert(ctx, vectorstore.Record{
			Product:   p,
			Document:  p.SearchText(),
			Embedding: make([]float32, 32),
		}))
	}
}

func TestRetrieveAppliesBudgetCeiling(t *testing.T) {
	index := newMemoryIndex()
	sale := 75.0
	seedIndex(t, index, []models.Product{
		{ProductID: "CHEAP", Name: "Tee", Category: models.CategoryTops, Price: 25, InStock: true},
		{ProductID: "EXACT", Name: "Jeans", Category: models.CategoryBottoms, Price: 100, InStock: true},
		{ProductID: "SALE", Name: "Jacket", Category: models.CategoryOuterwear, Price: 150, SalePrice: &sale, InStock: true},
		{ProductID: "OVER", Name: "Coat", Category: models.CategoryOuterwear, Price: 300, InStock: true},
	})

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	budget := 100.0
	candidates := svc.Retrieve(context.Background(), &models.UserQuery{Query: "something nice", Budget: &budget}, nil)

	ids := candidateIDs(candidates)
	// A product priced exactly at the budget is included.
	assert.Contains(t, ids, "CHEAP")
	assert.Contains(t, ids, "EXACT")
	assert.NotContains(t, ids, "OVER")
}

func TestRetrieveTakesTighterOfQueryAndProfileBudget(t *testing.T) {
	index := newMemoryIndex()
	seedIndex(t, index, []models.Product{
		{ProductID: "P1", Name: "Tee", Category: models.CategoryTops, Price: 40, InStock: true},
		{ProductID: "P2", Name: "Jeans", Category: models.CategoryBottoms, Price: 80, InStock: true},
	})

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	queryBudget := 100.0
	profileBudget := 50.0
	candidates := svc.Retrieve(context.Background(),
		&models.UserQuery{Query: "anything", Budget: &queryBudget},
		&models.UserProfile{UserID: "u1", BudgetMax: &profileBudget})

	assert.Equal(t, []string{"P1"}, candidateIDs(candidates))
}

func TestRetrieveFiltersOnPreferredBrands(t *testing.T) {
	index := newMemoryIndex()
	seedIndex(t, index, []models.Product{
		{ProductID: "P1", Name: "Tee", Category: models.CategoryTops, Price: 30, InStock: true,
			Attributes: models.ProductAttributes{Brand: "Basics Co"}},
		{ProductID: "P2", Name: "Jeans", Category: models.CategoryBottoms, Price: 90, InStock: true,
			Attributes: models.ProductAttributes{Brand: "Denim Works"}},
		{ProductID: "P3", Name: "Jacket", Category: models.CategoryOuterwear, Price: 120, InStock: true,
			Attributes: models.ProductAttributes{Brand: "Urban Hide"}},
	})

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	profile := &models.UserProfile{
		UserID: "u1",
		StylePreferences: &models.StylePreferences{
			PreferredBrands: []string{"Denim Works", "Urban Hide"},
		},
	}
	candidates := svc.Retrieve(context.Background(), &models.UserQuery{Query: "anything"}, profile)
	assert.Equal(t, []string{"P2", "P3"}, candidateIDs(candidates))

	// Without brand preferences every brand qualifies.
	candidates = svc.Retrieve(context.Background(), &models.UserQuery{Query: "anything"}, nil)
	assert.Len(t, candidates, 3)
}

func TestRetrieveExcludesCategories(t *testing.T) {
	index := newMemoryIndex()
	seedIndex(t, index, []models.Product{
		{ProductID: "P1", Name: "Tee", Category: models.CategoryTops, Price: 40, InStock: true},
		{ProductID: "P2", Name: "Necklace", Category: models.CategoryJewelry, Price: 30, InStock: true},
	})

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	candidates := svc.Retrieve(context.Background(), &models.UserQuery{
		Query:              "anything",
		ExcludedCategories: []models.Category{models.CategoryJewelry},
	}, nil)

	assert.Equal(t, []string{"P1"}, candidateIDs(candidates))
}

func TestRetrieveColorPreferenceIsPermissive(t *testing.T) {
	index := newMemoryIndex()
	seedIndex(t, index, []models.Product{
		{ProductID: "MATCH", Name: "Tee", Category: models.CategoryTops, Price: 40, InStock: true,
			Attributes: models.ProductAttributes{Colors: []string{"Black", "white"}}},
		{ProductID: "MISS", Name: "Tee", Category: models.CategoryTops, Price: 40, InStock: true,
			Attributes: models.ProductAttributes{Colors: []string{"red"}}},
		{ProductID: "NOCOLOR", Name: "Scarf", Category: models.CategoryAccessories, Price: 20, InStock: true},
	})

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	candidates := svc.Retrieve(context.Background(), &models.UserQuery{
		Query:            "anything",
		ColorPreferences: []string{"black"},
	}, nil)

	ids := candidateIDs(candidates)
	// Matching is case-insensitive, and products with no listed colors pass.
	assert.Contains(t, ids, "MATCH")
	assert.Contains(t, ids, "NOCOLOR")
	assert.NotContains(t, ids, "MISS")
}

func TestRetrieveExcludesSaleItemsWhenAsked(t *testing.T) {
	index := newMemoryIndex()
	sale := 20.0
	seedIndex(t, index, []models.Product{
		{ProductID: "FULL", Name: "Tee", Category: models.CategoryTops, Price: 40, InStock: true},
		{ProductID: "SALE", Name: "Tee", Category: models.CategoryTops, Price: 40, SalePrice: &sale, InStock: true},
	})

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	noSale := false
	candidates := svc.Retrieve(context.Background(), &models.UserQuery{
		Query:            "anything",
		IncludeSaleItems: &noSale,
	}, nil)
	assert.Equal(t, []string{"FULL"}, candidateIDs(candidates))

	// Sale items are included by default.
	candidates = svc.Retrieve(context.Background(), &models.UserQuery{Query: "anything"}, nil)
	assert.Len(t, candidates, 2)
}

func TestRetrieveHonorsMaxResults(t *testing.T) {
	index := newMemoryIndex()
	seedIndex(t, index, SampleCatalog())

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	candidates := svc.Retrieve(context.Background(), &models.UserQuery{Query: "anything", MaxResults: 3}, nil)
	assert.Len(t, candidates, 3)
}

func TestRetrieveEmptyOnIndexFailure(t *testing.T) {
	index := newMemoryIndex()
	index.queryEr = errors.New("index down")

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	candidates := svc.Retrieve(context.Background(), &models.UserQuery{Query: "anything"}, nil)
	assert.Empty(t, candidates)
}

func TestRetrieveScoresFromDistance(t *testing.T) {
	index := newMemoryIndex()
	seedIndex(t, index, []models.Product{
		{ProductID: "P1", Name: "Tee", Category: models.CategoryTops, Price: 40, InStock: true},
		{ProductID: "P2", Name: "Jeans", Category: models.CategoryBottoms, Price: 80, InStock: true},
	})

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	candidates := svc.Retrieve(context.Background(), &models.UserQuery{Query: "anything"}, nil)
	require.Len(t, candidates, 2)
	assert.Greater(t, candidates[0].Score, candidates[1].Score)
}

func TestFindSimilarExcludesAnchor(t *testing.T) {
	index := newMemoryIndex()
	seedIndex(t, index, SampleCatalog())

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	similar := svc.FindSimilar(context.Background(), "SKU001", 3)
	require.Len(t, similar, 3)
	for _, p := range similar {
		assert.NotEqual(t, "SKU001", p.ProductID)
	}

	assert.Nil(t, svc.FindSimilar(context.Background(), "MISSING", 3))
}

func TestOutfitCombinations(t *testing.T) {
	index := newMemoryIndex()
	seedIndex(t, index, SampleCatalog())

	svc := NewRetrievalService(index, testEmbeddings(), testRetrievalConfig())

	combos := svc.OutfitCombinations(context.Background(), "SKU001")
	require.NotEmpty(t, combos)
	assert.LessOrEqual(t, len(combos), 3)

	for _, combo := range combos {
		require.NotEmpty(t, combo)
		assert.Equal(t, "SKU001", combo[0].ProductID)
		assert.Greater(t, len(combo), 1)
		// Complementary picks never repeat the anchor.
		for _, p := range combo[1:] {
			assert.NotEqual(t, "SKU001", p.ProductID)
		}
	}

	assert.Nil(t, svc.OutfitCombinations(context.Background(), "MISSING"))
}

func candidateIDs(candidates []models.RetrievalCandidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.Product.ProductID)
	}
	return ids
}
