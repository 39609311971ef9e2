// internal/models/retailer.go
package models

import "time"

// Interaction records one user action on a product inside a chat session.
type Interaction struct {
	ProductID string          `json:"product_id"`
	UserID    string          `json:"user_id"`
	Type      InteractionType `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type RetailerRecommendation struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	Reason          string  `json:"reason,omitempty"`
	Type            string  `json:"type,omitempty"`
	Score           float64 `json:"score"`
	Price           float64 `json:"price,omitempty"`
	Category        string  `json:"category,omitempty"`
	Occasion        string  `json:"occasion,omitempty"`
	Style           string  `json:"style,omitempty"`
	StylingNote     string  `json:"styling_note,omitempty"`
	OutfitPotential float64 `json:"outfit_potential"`
}

type RetailerRecommendationResult struct {
	Status          string                   `json:"status"`
	Interaction     *Interaction             `json:"interaction,omitempty"`
	Recommendations []RetailerRecommendation `json:"recommendations"`
	Source          string                   `json:"source,omitempty"`
	SessionID       string                   `json:"session_id,omitempty"`
	Timestamp       time.Time                `json:"timestamp"`
	Error           string                   `json:"error,omitempty"`
}

// InteractionOutfit is an outfit assembled from products a user has
// interacted with during a session.
type InteractionOutfit struct {
	OutfitID           string    `json:"outfit_id"`
	Items              []Product `json:"items"`
	TotalPrice         float64   `json:"total_price"`
	CreatedFrom        string    `json:"created_from"`
	CompatibilityScore float64   `json:"compatibility_score"`
}
