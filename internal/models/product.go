// internal/models/product.go
package models

import (
	"fmt"
	"strings"
)

type ProductAttributes struct {
	Colors    []string          `json:"colors,omitempty"`
	Pattern   string            `json:"pattern,omitempty"`
	Material  string            `json:"material,omitempty"`
	Occasions []Occasion        `json:"occasions,omitempty"`
	Seasons   []Season          `json:"seasons,omitempty"`
	Style     string            `json:"style,omitempty"`
	Brand     string            `json:"brand,omitempty"`
	Fit       string            `json:"fit,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

type Product struct {
	ProductID   string            `json:"product_id" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Category    Category          `json:"category" validate:"required,category"`
	Description string            `json:"description"`
	Attributes  ProductAttributes `json:"attributes"`
	Price       float64           `json:"price" validate:"gte=0"`
	SalePrice   *float64          `json:"sale_price,omitempty" validate:"omitempty,gte=0"`
	Sizes       []string          `json:"sizes,omitempty"`
	InStock     bool              `json:"in_stock"`
	Images      []string          `json:"images,omitempty"`
}

// DisplayPrice is the price shown and totaled: sale price when one is set,
// list price otherwise. Always derived, never stored.
func (p *Product) DisplayPrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

func (p *Product) OnSale() bool {
	return p.SalePrice != nil && *p.SalePrice < p.Price
}

// SearchText builds the document that gets embedded into the vector index.
func (p *Product) SearchText() string {
	parts := []string{p.Name, p.Description, fmt.Sprintf("Category: %s", p.Category)}

	if len(p.Attributes.Colors) > 0 {
		parts = append(parts, fmt.Sprintf("Colors: %s", strings.Join(p.Attributes.Colors, ", ")))
	}
	if p.Attributes.Pattern != "" {
		parts = append(parts, fmt.Sprintf("Pattern: %s", p.Attributes.Pattern))
	}
	if p.Attributes.Material != "" {
		parts = append(parts, fmt.Sprintf("Material: %s", p.Attributes.Material))
	}
	if p.Attributes.Style != "" {
		parts = append(parts, fmt.Sprintf("Style: %s", p.Attributes.Style))
	}
	if p.Attributes.Brand != "" {
		parts = append(parts, fmt.Sprintf("Brand: %s", p.Attributes.Brand))
	}
	if len(p.Attributes.Occasions) > 0 {
		occasions := make([]string, len(p.Attributes.Occasions))
		for i, o := range p.Attributes.Occasions {
			occasions[i] = string(o)
		}
		parts = append(parts, fmt.Sprintf("Occasions: %s", strings.Join(occasions, ", ")))
	}
	if len(p.Attributes.Seasons) > 0 {
		seasons := make([]string, len(p.Attributes.Seasons))
		for i, s := range p.Attributes.Seasons {
			seasons[i] = string(s)
		}
		parts = append(parts, fmt.Sprintf("Seasons: %s", strings.Join(seasons, ", ")))
	}

	return strings.Join(parts, ". ")
}
