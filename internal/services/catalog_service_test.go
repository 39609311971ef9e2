// internal/services/catalog_service_test.go
package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylisthq/stylist-backend/internal/config"
	"github.com/stylisthq/stylist-backend/internal/models"
	"github.com/stylisthq/stylist-backend/internal/vectorstore"
)

func newTestCatalog(index *memoryIndex) *CatalogService {
	return NewCatalogService(index, testEmbeddings(), config.AWSConfig{})
}

func TestAddProductValidates(t *testing.T) {
	index := newMemoryIndex()
	svc := newTestCatalog(index)
	ctx := context.Background()

	err := svc.AddProduct(ctx, &models.Product{
		ProductID: "P1",
		Name:      "Hover Boots",
		Category:  "hoverwear",
		Price:     99.99,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")

	require.NoError(t, svc.AddProduct(ctx, &models.Product{
		ProductID: "P1",
		Name:      "Boots",
		Category:  models.CategoryShoes,
		Price:     99.99,
		InStock:   true,
	}))

	rec, err := index.Fetch(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "Boots", rec.Product.Name)
	assert.NotEmpty(t, rec.Document)
	assert.Len(t, rec.Embedding, 32)
}

func TestAddProductsReportsInvalidRows(t *testing.T) {
	svc := newTestCatalog(newMemoryIndex())

	report := svc.AddProducts(context.Background(), []models.Product{
		{ProductID: "P1", Name: "Tee", Category: models.CategoryTops, Price: 20, InStock: true},
		{ProductID: "P2", Name: "Bad", Category: "nope", Price: 20},
		{ProductID: "", Name: "No ID", Category: models.CategoryTops, Price: 20},
	})

	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 2, report.Failed)
	assert.Len(t, report.Errors, 2)
}

func TestInitializeSampleData(t *testing.T) {
	index := newMemoryIndex()
	svc := newTestCatalog(index)
	ctx := context.Background()

	report := svc.InitializeSampleData(ctx)
	assert.Equal(t, 10, report.Added)
	assert.Zero(t, report.Failed)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)

	// Re-initializing upserts rather than duplicating.
	svc.InitializeSampleData(ctx)
	count, _ = svc.Count(ctx)
	assert.EqualValues(t, 10, count)

	require.NoError(t, svc.Clear(ctx))
	count, _ = svc.Count(ctx)
	assert.Zero(t, count)
}

func TestDeleteProduct(t *testing.T) {
	index := newMemoryIndex()
	svc := newTestCatalog(index)
	ctx := context.Background()

	svc.InitializeSampleData(ctx)
	require.NoError(t, svc.DeleteProduct(ctx, "SKU001"))

	_, err := svc.GetProduct(ctx, "SKU001")
	assert.ErrorIs(t, err, vectorstore.ErrNotFound)
}

func TestIngestCSV(t *testing.T) {
	svc := newTestCatalog(newMemoryIndex())

	csvData := "product_id,name,category,price\n" +
		"C1,Linen Shirt,tops,69.99\n" +
		"C2,Wool Coat,outerwear,299.99\n"

	report, err := svc.IngestCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Added)

	_, err = svc.IngestCSV(context.Background(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestIngestCSVFromS3RequiresClient(t *testing.T) {
	svc := newTestCatalog(newMemoryIndex())

	_, err := svc.IngestCSVFromS3(context.Background(), "catalogs/export.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3")
}
