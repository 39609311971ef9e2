// internal/models/user.go
package models

type StylePreferences struct {
	PreferredColors    []string           `json:"preferred_colors,omitempty"`
	AvoidedColors      []string           `json:"avoided_colors,omitempty"`
	PreferredPatterns  []string           `json:"preferred_patterns,omitempty"`
	AvoidedPatterns    []string           `json:"avoided_patterns,omitempty"`
	PreferredBrands    []string           `json:"preferred_brands,omitempty"`
	StylePersonalities []StylePersonality `json:"style_personalities,omitempty"`
	PreferredFit       string             `json:"preferred_fit,omitempty"`
	ComfortPriority    int                `json:"comfort_priority,omitempty" validate:"omitempty,min=1,max=10"`
}

// UserProfile is personalization context supplied per request by the caller.
// The pipeline reads it, never persists it.
type UserProfile struct {
	UserID           string            `json:"user_id" validate:"required"`
	BodyType         *BodyType         `json:"body_type,omitempty"`
	StylePreferences *StylePreferences `json:"style_preferences,omitempty"`
	BudgetMin        *float64          `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax        *float64          `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
	Sizes            map[string]string `json:"sizes,omitempty"`
	PurchaseHistory  []string          `json:"purchase_history,omitempty"`
	Wishlist         []string          `json:"wishlist,omitempty"`
}

// UserQuery is the inbound styling request. Transient, one per request.
type UserQuery struct {
	Query               string     `json:"query" validate:"required,min=1,max=1000"`
	UserID              string     `json:"user_id,omitempty"`
	Occasion            *Occasion  `json:"occasion,omitempty"`
	Budget              *float64   `json:"budget,omitempty" validate:"omitempty,gt=0"`
	PreferredCategories []Category `json:"preferred_categories,omitempty"`
	ExcludedCategories  []Category `json:"excluded_categories,omitempty"`
	ColorPreferences    []string   `json:"color_preferences,omitempty"`
	Sizes               []string   `json:"sizes,omitempty"`
	IncludeSaleItems    *bool      `json:"include_sale_items,omitempty"`
	MaxResults          int        `json:"max_results,omitempty" validate:"omitempty,min=1,max=50"`
	ConversationID      string     `json:"conversation_id,omitempty"`
}

// SaleItemsAllowed defaults to true when the field is omitted.
func (q *UserQuery) SaleItemsAllowed() bool {
	return q.IncludeSaleItems == nil || *q.IncludeSaleItems
}
