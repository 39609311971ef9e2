// internal/services/csv.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stylisthq/stylist-backend/internal/models"
)

// categoryAliases maps common retailer spellings onto catalog categories.
// Unknown categories fall back to tops rather than rejecting the row.
var categoryAliases = map[string]models.Category{
	"top":         models.CategoryTops,
	"tops":        models.CategoryTops,
	"shirt":       models.CategoryTops,
	"shirts":      models.CategoryTops,
	"bottom":      models.CategoryBottoms,
	"bottoms":     models.CategoryBottoms,
	"pants":       models.CategoryBottoms,
	"skirt":       models.CategoryBottoms,
	"skirts":      models.CategoryBottoms,
	"dress":       models.CategoryDresses,
	"dresses":     models.CategoryDresses,
	"outerwear":   models.CategoryOuterwear,
	"jacket":      models.CategoryOuterwear,
	"jackets":     models.CategoryOuterwear,
	"coat":        models.CategoryOuterwear,
	"coats":       models.CategoryOuterwear,
	"shoe":        models.CategoryShoes,
	"shoes":       models.CategoryShoes,
	"footwear":    models.CategoryShoes,
	"accessory":   models.CategoryAccessories,
	"accessories": models.CategoryAccessories,
	"bag":         models.CategoryBags,
	"bags":        models.CategoryBags,
	"jewelry":     models.CategoryJewelry,
	"jewellery":   models.CategoryJewelry,
}

// ParseCatalogCSV reads a retailer catalog export. The first row is a header;
// column names are matched case-insensitively with a few common aliases.
func ParseCatalogCSV(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, names ...string) string {
		for _, name := range names {
			if idx, ok := columns[name]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
		}
		return ""
	}

	var products []models.Product
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV line %d: %w", line, err)
		}

		productID := field(row, "product_id", "sku")
		name := field(row, "name", "product_name")
		if productID == "" || name == "" {
			continue
		}

		price, err := strconv.ParseFloat(field(row, "price"), 64)
		if err != nil {
			continue
		}

		product := models.Product{
			ProductID:   productID,
			Name:        name,
			Category:    parseCategory(field(row, "category")),
			Description: field(row, "description"),
			Price:       price,
			Sizes:       splitList(field(row, "sizes")),
			InStock:     parseBoolDefault(field(row, "in_stock"), true),
		}

		if raw := field(row, "sale_price"); raw != "" {
			if salePrice, err := strconv.ParseFloat(raw, 64); err == nil {
				product.SalePrice = &salePrice
			}
		}
		if len(product.Sizes) == 0 {
			product.Sizes = []string{"S", "M", "L"}
		}

		product.Attributes = models.ProductAttributes{
			Colors:    splitList(field(row, "colors", "color")),
			Pattern:   field(row, "pattern"),
			Material:  field(row, "material"),
			Style:     field(row, "style"),
			Brand:     field(row, "brand"),
			Occasions: parseOccasions(splitList(field(row, "occasions", "occasion"))),
			Seasons:   parseSeasons(splitList(field(row, "seasons", "season"))),
		}

		if imageURL := field(row, "image_url", "image"); imageURL != "" {
			product.Images = []string{imageURL}
		}

		products = append(products, product)
	}

	return products, nil
}

func parseCategory(raw string) models.Category {
	if category, ok := categoryAliases[strings.ToLower(raw)]; ok {
		return category
	}
	if category := models.Category(strings.ToLower(raw)); category.Valid() {
		return category
	}
	return models.CategoryTops
}

func parseOccasions(values []string) []models.Occasion {
	var occasions []models.Occasion
	for _, v := range values {
		if occasion := models.Occasion(strings.ToLower(v)); occasion.Valid() {
			occasions = append(occasions, occasion)
		}
	}
	return occasions
}

func parseSeasons(values []string) []models.Season {
	var seasons []models.Season
	for _, v := range values {
		if season := models.Season(strings.ToLower(v)); season.Valid() {
			seasons = append(seasons, season)
		}
	}
	return seasons
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBoolDefault(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return fallback
	}
	return value
}
