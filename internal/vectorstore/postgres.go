// internal/vectorstore/postgres.go
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stylisthq/stylist-backend/internal/models"
)

var ErrNotFound = errors.New("product not found in vector index")

// ProductVector is one catalog entry: the embedding, the document it was
// built from, and denormalized metadata so query results render without a
// secondary lookup.
type ProductVector struct {
	ProductID   string          `gorm:"primaryKey;size:100"`
	Name        string          `gorm:"size:255;not null"`
	Category    string          `gorm:"size:50;index"`
	Description string          `gorm:"type:text"`
	Brand       string          `gorm:"size:100"`
	Price       float64         // display price, the filterable one
	ListPrice   float64
	SalePrice   *float64
	Colors      pq.StringArray  `gorm:"type:text[]"`
	Occasions   pq.StringArray  `gorm:"type:text[]"`
	Seasons     pq.StringArray  `gorm:"type:text[]"`
	Sizes       pq.StringArray  `gorm:"type:text[]"`
	Images      pq.StringArray  `gorm:"type:text[]"`
	Pattern     string          `gorm:"size:100"`
	Material    string          `gorm:"size:100"`
	Style       string          `gorm:"size:100"`
	Fit         string          `gorm:"size:100"`
	InStock     bool            `gorm:"index"`
	OnSale      bool
	Document    string          `gorm:"type:text"`
	Embedding   pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by distance queries only, never persisted.
	Distance float64 `gorm:"->;-:migration"`
}

// Store is the Postgres/pgvector implementation of Index.
type Store struct {
	db  *gorm.DB
	dim int
}

func NewStore(db *gorm.DB, dim int) *Store {
	return &Store{db: db, dim: dim}
}

func (s *Store) Upsert(ctx context.Context, rec Record) error {
	row, err := s.toRow(rec)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}

func (s *Store) UpsertBatch(ctx context.Context, recs []Record) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	rows := make([]*ProductVector, 0, len(recs))
	for _, rec := range recs {
		row, err := s.toRow(rec)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			UpdateAll: true,
		}).CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert product batch: %w", err)
	}

	return len(rows), nil
}

func (s *Store) Delete(ctx context.Context, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("product_id IN ?", []string(productIDs)).
		Delete(&ProductVector{}).Error
}

func (s *Store) Query(ctx context.Context, embedding []float32, topK int, filter Filter) ([]Hit, error) {
	if topK <= 0 {
		return nil, nil
	}

	q := s.db.WithContext(ctx).
		Model(&ProductVector{}).
		Select("*, embedding <=> ? AS distance", pgvector.NewVector(embedding))

	if len(filter.Categories) > 0 {
		q = q.Where("category IN ?", filter.Categories)
	}
	if len(filter.Brands) > 0 {
		q = q.Where("brand IN ?", filter.Brands)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.InStock != nil {
		q = q.Where("in_stock = ?", *filter.InStock)
	}
	if filter.ExcludeSale {
		q = q.Where("on_sale = ?", false)
	}

	var rows []ProductVector
	if err := q.Order("distance").Limit(topK).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}

	hits := make([]Hit, 0, len(rows))
	for i := range rows {
		hits = append(hits, Hit{
			Product:  rows[i].toProduct(),
			Distance: rows[i].Distance,
			Document: rows[i].Document,
		})
	}

	return hits, nil
}

func (s *Store) Fetch(ctx context.Context, productID string) (*Record, error) {
	var row ProductVector
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}

	return &Record{
		Product:   row.toProduct(),
		Document:  row.Document,
		Embedding: row.Embedding.Slice(),
	}, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&ProductVector{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&ProductVector{}).Error
}

func (s *Store) toRow(rec Record) (*ProductVector, error) {
	if rec.Product.ProductID == "" {
		return nil, errors.New("product_id is required")
	}
	if len(rec.Embedding) != s.dim {
		return nil, fmt.Errorf("embedding has dimension %d, expected %d", len(rec.Embedding), s.dim)
	}

	p := rec.Product

	occasions := make([]string, len(p.Attributes.Occasions))
	for i, o := range p.Attributes.Occasions {
		occasions[i] = string(o)
	}
	seasons := make([]string, len(p.Attributes.Seasons))
	for i, se := range p.Attributes.Seasons {
		seasons[i] = string(se)
	}

	return &ProductVector{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Category:    string(p.Category),
		Description: p.Description,
		Brand:       p.Attributes.Brand,
		Price:       p.DisplayPrice(),
		ListPrice:   p.Price,
		SalePrice:   p.SalePrice,
		Colors:      pq.StringArray(p.Attributes.Colors),
		Occasions:   pq.StringArray(occasions),
		Seasons:     pq.StringArray(seasons),
		Sizes:       pq.StringArray(p.Sizes),
		Images:      pq.StringArray(p.Images),
		Pattern:     p.Attributes.Pattern,
		Material:    p.Attributes.Material,
		Style:       p.Attributes.Style,
		Fit:         p.Attributes.Fit,
		InStock:     p.InStock,
		OnSale:      p.OnSale(),
		Document:    rec.Document,
		Embedding:   pgvector.NewVector(rec.Embedding),
	}, nil
}

func (r *ProductVector) toProduct() models.Product {
	occasions := make([]models.Occasion, 0, len(r.Occasions))
	for _, o := range r.Occasions {
		occasions = append(occasions, models.Occasion(o))
	}
	seasons := make([]models.Season, 0, len(r.Seasons))
	for _, se := range r.Seasons {
		seasons = append(seasons, models.Season(se))
	}

	return models.Product{
		ProductID:   r.ProductID,
		Name:        r.Name,
		Category:    models.Category(r.Category),
		Description: r.Description,
		Attributes: models.ProductAttributes{
			Colors:    []string(r.Colors),
			Pattern:   r.Pattern,
			Material:  r.Material,
			Occasions: occasions,
			Seasons:   seasons,
			Style:     r.Style,
			Brand:     r.Brand,
			Fit:       r.Fit,
		},
		Price:     r.ListPrice,
		SalePrice: r.SalePrice,
		Sizes:     []string(r.Sizes),
		InStock:   r.InStock,
		Images:    []string(r.Images),
	}
}
