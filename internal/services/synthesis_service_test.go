// internal/services/synthesis_service_test.go
package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylisthq/stylist-backend/internal/models"
)

func testCandidates() []models.RetrievalCandidate {
	sale := 60.0
	return []models.RetrievalCandidate{
		{Product: models.Product{ProductID: "P1", Name: "White Tee", Category: models.CategoryTops, Price: 30, InStock: true}, Score: 0.9},
		{Product: models.Product{ProductID: "P2", Name: "Black Jeans", Category: models.CategoryBottoms, Price: 90, InStock: true}, Score: 0.8},
		{Product: models.Product{ProductID: "P3", Name: "Sneakers", Category: models.CategoryShoes, Price: 80, SalePrice: &sale, InStock: true}, Score: 0.7},
		{Product: models.Product{ProductID: "P4", Name: "Bomber Jacket", Category: models.CategoryOuterwear, Price: 200, InStock: true}, Score: 0.6},
	}
}

func TestParseUnifiedResponse(t *testing.T) {
	raw := `{
		"search_terms": ["casual outfit", "everyday basics"],
		"product_rankings": [
			{"product_id": "P1", "score": 0.95, "reason": "versatile basic"},
			{"product_id": "P2", "score": 1.7, "reason": "pairs with everything"},
			{"product_id": "GHOST", "score": 0.9, "reason": "invented by the model"}
		],
		"outfits": [{
			"name": "Weekend Look",
			"description": "Relaxed and put together",
			"product_ids": ["P1", "P2", "P3", "GHOST"],
			"styling_tips": ["Roll the cuffs"],
			"total_price": 9999.99
		}],
		"styling_advice": "Keep it simple."
	}`

	result, ok := ParseUnifiedResponse(raw, testCandidates())
	require.True(t, ok)

	assert.Equal(t, []string{"casual outfit", "everyday basics"}, result.SearchTerms)
	assert.Equal(t, "Keep it simple.", result.StylingAdvice)

	// The invented product ID is dropped.
	require.Len(t, result.RankedProducts, 2)
	assert.Equal(t, "P1", result.RankedProducts[0].Product.ProductID)
	// Scores are clamped to [0, 1].
	assert.Equal(t, 1.0, result.RankedProducts[1].Score)

	require.Len(t, result.Outfits, 1)
	outfit := result.Outfits[0]
	assert.Equal(t, "Weekend Look", outfit.Name)
	assert.Len(t, outfit.Items, 3)
	// Totals come from display prices, not the model's arithmetic. P3 is on
	// sale, so its sale price counts.
	assert.InDelta(t, 30+90+60, outfit.TotalPrice, 0.001)
	assert.Equal(t, 0.85, outfit.ConfidenceScore)
	assert.Equal(t, "Top", outfit.Items[0].RoleInOutfit)
	assert.Equal(t, "Footwear", outfit.Items[2].RoleInOutfit)
}

func TestParseUnifiedResponseCodeFence(t *testing.T) {
	raw := "```json\n{\"product_rankings\": [{\"product_id\": \"P1\", \"score\": 0.5}], \"outfits\": []}\n```"

	result, ok := ParseUnifiedResponse(raw, testCandidates())
	require.True(t, ok)
	require.Len(t, result.RankedProducts, 1)
	assert.Equal(t, "P1", result.RankedProducts[0].Product.ProductID)
}

func TestParseUnifiedResponseUnusable(t *testing.T) {
	// Valid JSON with nothing usable in it.
	_, ok := ParseUnifiedResponse("{}", testCandidates())
	assert.False(t, ok)

	// Rankings that reference only unknown products.
	_, ok = ParseUnifiedResponse(`{"product_rankings": [{"product_id": "GHOST", "score": 0.9}]}`, testCandidates())
	assert.False(t, ok)

	// Not JSON at all.
	_, ok = ParseUnifiedResponse("Sorry, I can't help with that.", testCandidates())
	assert.False(t, ok)
}

func TestSynthesizeFallsBackOnGatewayError(t *testing.T) {
	svc := NewSynthesisService(&stubGateway{err: errGatewayDown}, disabledCache(), testRetrievalConfig())

	candidates := testCandidates()
	result := svc.Synthesize(context.Background(), &models.UserQuery{Query: "casual outfit"}, candidates, nil)

	require.NotNil(t, result)
	assert.Equal(t, "Here are some great options for you. Feel free to mix and match!", result.StylingAdvice)
	require.Len(t, result.RankedProducts, 4)
	for _, ranked := range result.RankedProducts {
		assert.Equal(t, 0.7, ranked.Score)
	}

	require.Len(t, result.Outfits, 1)
	outfit := result.Outfits[0]
	assert.Equal(t, "Suggested Look", outfit.Name)
	assert.Equal(t, "A versatile outfit combination", outfit.Description)
	assert.Len(t, outfit.Items, 3)
	assert.InDelta(t, 30+90+60, outfit.TotalPrice, 0.001)
	assert.Equal(t, []string{"Mix and match as desired"}, outfit.StylingTips)
}

func TestSynthesizeFallsBackOnUnusablePayload(t *testing.T) {
	svc := NewSynthesisService(&stubGateway{jsonReply: "{}"}, disabledCache(), testRetrievalConfig())

	result := svc.Synthesize(context.Background(), &models.UserQuery{Query: "casual outfit"}, testCandidates(), nil)

	require.NotNil(t, result)
	assert.NotEmpty(t, result.Outfits)
	assert.Equal(t, "Suggested Look", result.Outfits[0].Name)
}

func TestExpandSearchTerms(t *testing.T) {
	svc := NewSynthesisService(&stubGateway{completeReply: "- linen shirt\n2. white sneakers\n\n• summer dress"}, disabledCache(), testRetrievalConfig())

	terms := svc.ExpandSearchTerms(context.Background(), "summer looks")
	assert.Equal(t, []string{"linen shirt", "white sneakers", "summer dress"}, terms)
}

func TestExpandSearchTermsFallsBackToRawQuery(t *testing.T) {
	svc := NewSynthesisService(&stubGateway{err: errGatewayDown}, disabledCache(), testRetrievalConfig())

	terms := svc.ExpandSearchTerms(context.Background(), "summer looks")
	assert.Equal(t, []string{"summer looks"}, terms)
}

func TestRerankCandidates(t *testing.T) {
	cfg := testRetrievalConfig()
	cfg.FinalTopK = 2

	// The model ranks P3 first, omits P2 and P4, and invents GHOST.
	svc := NewSynthesisService(&stubGateway{completeReply: "P3\nGHOST\nP1\nP3"}, disabledCache(), cfg)

	reranked := svc.RerankCandidates(context.Background(), &models.UserQuery{Query: "q"}, testCandidates())

	require.Len(t, reranked, 4)
	assert.Equal(t, "P3", reranked[0].Product.ProductID)
	assert.Equal(t, "P1", reranked[1].Product.ProductID)
	// Omitted products keep their retrieval order at the tail.
	assert.Equal(t, "P2", reranked[2].Product.ProductID)
	assert.Equal(t, "P4", reranked[3].Product.ProductID)
}

func TestRerankSkippedUnderBudget(t *testing.T) {
	svc := NewSynthesisService(&stubGateway{err: errGatewayDown}, disabledCache(), testRetrievalConfig())

	// Candidate count is within FinalTopK, so the gateway is never called and
	// the error never surfaces.
	candidates := testCandidates()
	reranked := svc.RerankCandidates(context.Background(), &models.UserQuery{Query: "q"}, candidates)
	assert.Equal(t, candidates, reranked)
}

func TestParseOutfitNarrative(t *testing.T) {
	products := []models.Product{
		{ProductID: "P1", Name: "White Tee", Category: models.CategoryTops, Price: 30},
		{ProductID: "P2", Name: "Black Jeans", Category: models.CategoryBottoms, Price: 90},
		{ProductID: "P3", Name: "Sneakers", Category: models.CategoryShoes, Price: 80},
	}

	narrative := "Here are my picks.\n" +
		"Outfit 1: Start with the White Tee and P2 for an easy base.\n" +
		"Tip: Pair this with minimal jewelry for a clean look.\n" +
		"Outfit 2: Dress the Sneakers up with P2.\n"

	outfits := ParseOutfitNarrative(narrative, products)
	require.Len(t, outfits, 2)

	assert.Equal(t, "Outfit 1", outfits[0].Name)
	assert.Len(t, outfits[0].Items, 2)
	assert.InDelta(t, 120, outfits[0].TotalPrice, 0.001)
	assert.Equal(t, 0.85, outfits[0].ConfidenceScore)
	assert.NotEmpty(t, outfits[0].StylingTips)

	assert.Equal(t, "Outfit 2", outfits[1].Name)
	assert.Len(t, outfits[1].Items, 2)
}

func TestParseOutfitNarrativeTruncatesOnRuneBoundary(t *testing.T) {
	products := []models.Product{{ProductID: "P1", Name: "White Tee", Category: models.CategoryTops, Price: 30}}

	// 25 bytes of ASCII before a run of two-byte runes puts the 200-byte mark
	// in the middle of a rune.
	head := "P1 pairs well with denim."
	narrative := "Outfit " + head + strings.Repeat("é", 100)

	outfits := ParseOutfitNarrative(narrative, products)
	require.Len(t, outfits, 1)

	desc := outfits[0].Description
	assert.LessOrEqual(t, len(desc), 200)
	assert.True(t, utf8.ValidString(desc))
	assert.Equal(t, 199, len(desc))
}

func TestParseOutfitNarrativeNoSections(t *testing.T) {
	products := []models.Product{{ProductID: "P1", Name: "White Tee", Category: models.CategoryTops, Price: 30}}
	assert.Nil(t, ParseOutfitNarrative("No structured sections here, just advice.", products))
}

func TestExtractStylingTips(t *testing.T) {
	text := "Outfit 1 details\n" +
		"Tip: Pair with white sneakers for contrast.\n" +
		"wear\n" + // too short to be a tip
		"Add a belt to define the waist a little more.\n" +
		"This sentence mentions nothing relevant at all, okay.\n" +
		"Style it with a light scarf in spring.\n" +
		"Wear heels to dress the whole thing up at night.\n"

	tips := extractStylingTips(text)
	require.Len(t, tips, 3)
	assert.Equal(t, "Tip: Pair with white sneakers for contrast.", tips[0])
}

func TestExtractStylingTipsDefault(t *testing.T) {
	assert.Equal(t, []string{"Style with confidence"}, extractStylingTips("nothing useful"))
}

func TestDefaultOutfit(t *testing.T) {
	products := []models.Product{
		{ProductID: "P1", Category: models.CategoryTops, Price: 30},
		{ProductID: "P2", Category: models.CategoryBottoms, Price: 90},
		{ProductID: "P3", Category: models.CategoryShoes, Price: 80},
		{ProductID: "P4", Category: models.CategoryOuterwear, Price: 200},
	}

	outfit := defaultOutfit(products)
	require.NotNil(t, outfit)
	assert.Equal(t, "Recommended Style", outfit.Name)
	assert.Len(t, outfit.Items, 3)
	assert.InDelta(t, 200, outfit.TotalPrice, 0.001)
	assert.Equal(t, 0.7, outfit.ConfidenceScore)

	assert.Nil(t, defaultOutfit(nil))
}
