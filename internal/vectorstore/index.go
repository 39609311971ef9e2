// internal/vectorstore/index.go
package vectorstore

import (
	"context"

	"github.com/stylisthq/stylist-backend/internal/models"
)

// Filter is the metadata filter grammar the index supports: set membership,
// numeric less-than-or-equal, and boolean equality.
type Filter struct {
	Categories  []string
	Brands      []string
	MaxPrice    *float64
	InStock     *bool
	ExcludeSale bool
}

// Record is a product plus its search document and embedding, as stored.
type Record struct {
	Product   models.Product
	Document  string
	Embedding []float32
}

// Hit is one nearest-neighbor result. The product is hydrated entirely from
// metadata stored beside the vector; no secondary lookup happens at query time.
type Hit struct {
	Product  models.Product
	Distance float64
	Document string
}

type Index interface {
	Upsert(ctx context.Context, rec Record) error
	UpsertBatch(ctx context.Context, recs []Record) (int, error)
	Delete(ctx context.Context, productIDs []string) error
	Query(ctx context.Context, embedding []float32, topK int, filter Filter) ([]Hit, error)
	Fetch(ctx context.Context, productID string) (*Record, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}
