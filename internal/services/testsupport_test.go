// internal/services/testsupport_test.go
package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/stylisthq/stylist-backend/internal/cache"
	"github.com/stylisthq/stylist-backend/internal/config"
	"github.com/stylisthq/stylist-backend/internal/embeddings"
	"github.com/stylisthq/stylist-backend/internal/models"
	"github.com/stylisthq/stylist-backend/internal/vectorstore"
)

// memoryIndex is an in-process vectorstore.Index. Query returns records in
// insertion order with increasing distances, which keeps test expectations
// readable without real similarity math.
type memoryIndex struct {
	mtx     sync.Mutex
	order   []string
	records map[string]vectorstore.Record
	queryEr error
}

func newMemoryIndex() *memoryIndex {
	return &memoryIndex{records: make(map[string]vectorstore.Record)}
}

func (m *memoryIndex) Upsert(ctx context.Context, rec vectorstore.Record) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if _, exists := m.records[rec.Product.ProductID]; !exists {
		m.order = append(m.order, rec.Product.ProductID)
	}
	m.records[rec.Product.ProductID] = rec
	return nil
}

func (m *memoryIndex) UpsertBatch(ctx context.Context, recs []vectorstore.Record) (int, error) {
	for _, rec := range recs {
		if err := m.Upsert(ctx, rec); err != nil {
			return 0, err
		}
	}
	return len(recs), nil
}

func (m *memoryIndex) Delete(ctx context.Context, ids []string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	for _, id := range ids {
		delete(m.records, id)
		for i, existing := range m.order {
			if existing == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (m *memoryIndex) Query(ctx context.Context, vector []float32, topK int, filter vectorstore.Filter) ([]vectorstore.Hit, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.queryEr != nil {
		return nil, m.queryEr
	}

	var hits []vectorstore.Hit
	for i, id := range m.order {
		rec := m.records[id]
		if !matchesFilter(rec, filter) {
			continue
		}
		hits = append(hits, vectorstore.Hit{
			Product:  rec.Product,
			Distance: 0.01 * float64(i),
			Document: rec.Document,
		})
		if len(hits) == topK {
			break
		}
	}
	return hits, nil
}

func matchesFilter(rec vectorstore.Record, filter vectorstore.Filter) bool {
	if filter.InStock != nil && rec.Product.InStock != *filter.InStock {
		return false
	}
	if filter.MaxPrice != nil && rec.Product.Price > *filter.MaxPrice {
		return false
	}
	if filter.ExcludeSale && rec.Product.OnSale() {
		return false
	}
	if len(filter.Brands) > 0 {
		found := false
		for _, b := range filter.Brands {
			if b == rec.Product.Attributes.Brand {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(filter.Categories) > 0 {
		found := false
		for _, c := range filter.Categories {
			if c == string(rec.Product.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *memoryIndex) Fetch(ctx context.Context, id string) (*vectorstore.Record, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, vectorstore.ErrNotFound
	}
	return &rec, nil
}

func (m *memoryIndex) Count(ctx context.Context) (int64, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return int64(len(m.records)), nil
}

func (m *memoryIndex) Clear(ctx context.Context) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.records = make(map[string]vectorstore.Record)
	m.order = nil
	return nil
}

// stubGateway lets a test script exact model replies or force failures.
type stubGateway struct {
	completeReply string
	jsonReply     string
	err           error
}

func (g *stubGateway) Name() string { return "stub" }

func (g *stubGateway) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.completeReply, nil
}

func (g *stubGateway) CompleteJSON(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.jsonReply, nil
}

var errGatewayDown = errors.New("gateway unavailable")

// memoryCache is an in-process ResultCache. Reads return a copy of the stored
// value, matching the real cache's decode-on-read behavior.
type memoryCache struct {
	mtx          sync.Mutex
	queryResults map[string]models.StylistResponse
	searchTerms  map[string][]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		queryResults: make(map[string]models.StylistResponse),
		searchTerms:  make(map[string][]string),
	}
}

func resultKey(query, userID string) string {
	if userID == "" {
		userID = "anonymous"
	}
	return strings.ToLower(strings.TrimSpace(query)) + "|" + userID
}

func (m *memoryCache) GetQueryResult(ctx context.Context, query, userID string) *models.StylistResponse {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	resp, ok := m.queryResults[resultKey(query, userID)]
	if !ok {
		return nil
	}
	return &resp
}

func (m *memoryCache) SetQueryResult(ctx context.Context, query, userID string, resp *models.StylistResponse) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.queryResults[resultKey(query, userID)] = *resp
	return true
}

func (m *memoryCache) GetSearchTerms(ctx context.Context, query string) []string {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.searchTerms[query]
}

func (m *memoryCache) SetSearchTerms(ctx context.Context, query string, terms []string) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.searchTerms[query] = terms
	return true
}

func testRetrievalConfig() config.RetrievalConfig {
	return config.RetrievalConfig{
		RerankTopK:     50,
		FinalTopK:      15,
		OptimizedTopK:  30,
		Temperature:    0.7,
		MaxTokens:      1500,
		RequestTimeout: 5,
	}
}

func disabledCache() *cache.Cache {
	return cache.New(config.RedisConfig{}, config.CacheConfig{Enabled: false})
}

func testEmbeddings() *embeddings.Service {
	return embeddings.NewService(config.OpenAIConfig{
		EmbeddingModel: "text-embedding-3-small",
		EmbeddingDim:   32,
	}, nil)
}
