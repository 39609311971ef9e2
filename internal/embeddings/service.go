// internal/embeddings/service.go
package embeddings

import (
	"context"
	"hash/fnv"
	"math/rand"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"github.com/stylisthq/stylist-backend/internal/config"
)

// Cache is the slice of the result cache the embedding layer uses.
// *cache.Cache satisfies it; a nil Cache disables lookups.
type Cache interface {
	GetEmbedding(ctx context.Context, text string) []float32
	SetEmbedding(ctx context.Context, text string, vec []float32) bool
}

// Service turns text into fixed-dimension vectors. Without a configured
// provider, or when the provider errors, it substitutes a deterministic
// pseudo-random vector of the correct dimension so the pipeline keeps moving.
type Service struct {
	client *openai.Client
	model  string
	dim    int
	cache  Cache
	log    *logrus.Entry
}

func NewService(cfg config.OpenAIConfig, resultCache Cache) *Service {
	s := &Service{
		model: cfg.EmbeddingModel,
		dim:   cfg.EmbeddingDim,
		cache: resultCache,
		log:   logrus.WithField("component", "embeddings"),
	}

	if cfg.APIKey != "" {
		client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
		s.client = &client
	} else {
		s.log.Warn("No embedding provider configured, using deterministic fallback vectors")
	}

	return s
}

func (s *Service) Dimension() int {
	return s.dim
}

func (s *Service) Embed(ctx context.Context, text string) []float32 {
	if s.cache != nil {
		if vec := s.cache.GetEmbedding(ctx, text); len(vec) == s.dim {
			return vec
		}
	}

	vec, err := s.embedRemote(ctx, text)
	if err != nil {
		s.log.WithError(err).Warn("Embedding call failed, substituting deterministic vector")
		return s.fallbackVector(text)
	}

	if s.cache != nil {
		s.cache.SetEmbedding(ctx, text, vec)
	}

	return vec
}

// EmbedBatch resolves each text against the cache first and sends only the
// misses to the provider in one call.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) [][]float32 {
	if len(texts) == 0 {
		return nil
	}

	vecs := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		if s.cache != nil {
			if vec := s.cache.GetEmbedding(ctx, text); len(vec) == s.dim {
				vecs[i] = vec
				continue
			}
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return vecs
	}

	fetched, err := s.embedBatchRemote(ctx, missTexts)
	if err != nil {
		s.log.WithError(err).Warn("Batch embedding call failed, substituting deterministic vectors")
		for i, idx := range missIdx {
			vecs[idx] = s.fallbackVector(missTexts[i])
		}
		return vecs
	}

	for i, idx := range missIdx {
		vecs[idx] = fetched[i]
		if s.cache != nil {
			s.cache.SetEmbedding(ctx, missTexts[i], fetched[i])
		}
	}

	return vecs
}

func (s *Service) embedRemote(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.embedBatchRemote(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (s *Service) embedBatchRemote(ctx context.Context, texts []string) ([][]float32, error) {
	if s.client == nil {
		return nil, ErrNoProvider
	}

	resp, err := s.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(s.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, ErrShortResponse
	}

	vecs := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		vec := make([]float32, len(item.Embedding))
		for j, v := range item.Embedding {
			vec[j] = float32(v)
		}
		vecs[i] = vec
	}

	return vecs, nil
}

// fallbackVector is seeded from the text so repeated calls for the same input
// agree, which keeps cache keys and similarity lookups stable while degraded.
func (s *Service) fallbackVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float32, s.dim)
	for i := range vec {
		vec[i] = float32(rng.NormFloat64())
	}
	return vec
}
