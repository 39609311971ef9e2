// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/stylisthq/stylist-backend/internal/config"
	"github.com/stylisthq/stylist-backend/internal/embeddings"
	"github.com/stylisthq/stylist-backend/internal/models"
	"github.com/stylisthq/stylist-backend/internal/utils"
	"github.com/stylisthq/stylist-backend/internal/vectorstore"
)

// CatalogService owns product ingestion: it turns products into searchable
// documents, embeds them, and writes them to the vector index.
type CatalogService struct {
	index      vectorstore.Index
	embeddings *embeddings.Service
	s3Client   *s3.S3
	bucket     string
	log        *logrus.Entry
}

type IngestReport struct {
	Added  int      `json:"added"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

func NewCatalogService(index vectorstore.Index, emb *embeddings.Service, awsCfg config.AWSConfig) *CatalogService {
	svc := &CatalogService{
		index:      index,
		embeddings: emb,
		bucket:     awsCfg.S3Bucket,
		log:        logrus.WithField("component", "catalog"),
	}

	if awsCfg.AccessKeyID != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(awsCfg.Region),
			Credentials: credentials.NewStaticCredentials(
				awsCfg.AccessKeyID,
				awsCfg.SecretAccessKey,
				"",
			),
		})
		if err != nil {
			svc.log.WithError(err).Warn("AWS session unavailable, S3 catalog ingestion disabled")
		} else {
			svc.s3Client = s3.New(sess)
		}
	}

	return svc
}

// AddProduct validates, embeds, and indexes a single product.
func (s *CatalogService) AddProduct(ctx context.Context, product *models.Product) error {
	if errs := utils.ValidateStruct(product); len(errs) > 0 {
		return fmt.Errorf("invalid product %s: %s", product.ProductID, errs[0].Message)
	}

	document := product.SearchText()
	vector := s.embeddings.Embed(ctx, document)

	return s.index.Upsert(ctx, vectorstore.Record{
		Product:   *product,
		Document:  document,
		Embedding: vector,
	})
}

// AddProducts embeds a batch in one provider call and indexes the valid rows.
// Invalid rows are reported, not fatal.
func (s *CatalogService) AddProducts(ctx context.Context, products []models.Product) *IngestReport {
	report := &IngestReport{}

	valid := make([]models.Product, 0, len(products))
	for i := range products {
		if errs := utils.ValidateStruct(&products[i]); len(errs) > 0 {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", products[i].ProductID, errs[0].Message))
			continue
		}
		valid = append(valid, products[i])
	}

	if len(valid) == 0 {
		return report
	}

	documents := make([]string, len(valid))
	for i := range valid {
		documents[i] = valid[i].SearchText()
	}
	vectors := s.embeddings.EmbedBatch(ctx, documents)

	records := make([]vectorstore.Record, len(valid))
	for i := range valid {
		records[i] = vectorstore.Record{
			Product:   valid[i],
			Document:  documents[i],
			Embedding: vectors[i],
		}
	}

	written, err := s.index.UpsertBatch(ctx, records)
	if err != nil {
		s.log.WithError(err).Error("Batch index write failed")
		report.Failed += len(valid)
		report.Errors = append(report.Errors, err.Error())
		return report
	}

	report.Added = written
	return report
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) error {
	return s.index.Delete(ctx, []string{productID})
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	rec, err := s.index.Fetch(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &rec.Product, nil
}

func (s *CatalogService) Count(ctx context.Context) (int64, error) {
	return s.index.Count(ctx)
}

// Clear drops every product from the index.
func (s *CatalogService) Clear(ctx context.Context) error {
	return s.index.Clear(ctx)
}

// InitializeSampleData loads the built-in demo catalog.
func (s *CatalogService) InitializeSampleData(ctx context.Context) *IngestReport {
	return s.AddProducts(ctx, SampleCatalog())
}

// IngestCSV parses and indexes a CSV catalog export.
func (s *CatalogService) IngestCSV(ctx context.Context, r io.Reader) (*IngestReport, error) {
	products, err := ParseCatalogCSV(r)
	if err != nil {
		return nil, err
	}
	return s.AddProducts(ctx, products), nil
}

// IngestCSVFromS3 downloads a catalog export from S3 and indexes it.
func (s *CatalogService) IngestCSVFromS3(ctx context.Context, key string) (*IngestReport, error) {
	if s.s3Client == nil {
		return nil, fmt.Errorf("S3 client not configured")
	}

	// Accept both a bare object key and a full s3://bucket/key URI.
	bucket := s.bucket
	if strings.HasPrefix(key, "s3://") {
		trimmed := strings.TrimPrefix(key, "s3://")
		if slash := strings.Index(trimmed, "/"); slash > 0 {
			bucket = trimmed[:slash]
			key = trimmed[slash+1:]
		}
	}

	obj, err := s.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download catalog from S3: %w", err)
	}
	defer obj.Body.Close()

	s.log.WithFields(logrus.Fields{
		"bucket": bucket,
		"key":    key,
	}).Info("Ingesting catalog CSV from S3")

	return s.IngestCSV(ctx, obj.Body)
}
