// internal/embeddings/service_test.go
package embeddings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylisthq/stylist-backend/internal/config"
)

type mapCache struct {
	vecs map[string][]float32
}

func newMapCache() *mapCache {
	return &mapCache{vecs: make(map[string][]float32)}
}

func (m *mapCache) GetEmbedding(ctx context.Context, text string) []float32 {
	return m.vecs[text]
}

func (m *mapCache) SetEmbedding(ctx context.Context, text string, vec []float32) bool {
	m.vecs[text] = vec
	return true
}

func newTestService(c Cache) *Service {
	return NewService(config.OpenAIConfig{
		EmbeddingModel: "text-embedding-3-small",
		EmbeddingDim:   4,
	}, c)
}

func TestEmbedServesCachedVector(t *testing.T) {
	c := newMapCache()
	svc := newTestService(c)

	cached := []float32{1, 2, 3, 4}
	c.vecs["linen shirt"] = cached

	assert.Equal(t, cached, svc.Embed(context.Background(), "linen shirt"))
}

func TestEmbedBatchServesCachedVectors(t *testing.T) {
	c := newMapCache()
	svc := newTestService(c)

	cached := []float32{1, 2, 3, 4}
	c.vecs["linen shirt"] = cached

	vecs := svc.EmbedBatch(context.Background(), []string{"linen shirt", "wool coat"})
	require.Len(t, vecs, 2)
	assert.Equal(t, cached, vecs[0])

	// The miss degrades to the deterministic vector since no provider is
	// configured, and degraded vectors are not written back.
	assert.Equal(t, svc.fallbackVector("wool coat"), vecs[1])
	_, written := c.vecs["wool coat"]
	assert.False(t, written)
}

func TestEmbedBatchIgnoresWrongDimensionCacheEntries(t *testing.T) {
	c := newMapCache()
	svc := newTestService(c)

	c.vecs["stale"] = []float32{1}

	vecs := svc.EmbedBatch(context.Background(), []string{"stale"})
	require.Len(t, vecs, 1)
	assert.Len(t, vecs[0], 4)
	assert.Equal(t, svc.fallbackVector("stale"), vecs[0])
}

func TestEmbedBatchFullyCachedSkipsProvider(t *testing.T) {
	c := newMapCache()
	svc := newTestService(c)

	c.vecs["a"] = []float32{1, 1, 1, 1}
	c.vecs["b"] = []float32{2, 2, 2, 2}

	vecs := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	require.Len(t, vecs, 2)
	assert.Equal(t, c.vecs["a"], vecs[0])
	assert.Equal(t, c.vecs["b"], vecs[1])
}

func TestFallbackVectorIsDeterministic(t *testing.T) {
	svc := newTestService(nil)

	assert.Equal(t, svc.fallbackVector("same text"), svc.fallbackVector("same text"))
	assert.NotEqual(t, svc.fallbackVector("same text"), svc.fallbackVector("other text"))
}
