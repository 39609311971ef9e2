// internal/models/response.go
package models

import "time"

// RetrievalCandidate pairs a product with its similarity score for one
// retrieval pass. It never outlives the request that produced it.
type RetrievalCandidate struct {
	Product  Product `json:"product"`
	Score    float64 `json:"score"`
	Document string  `json:"document,omitempty"`
}

type OutfitItem struct {
	Product      Product `json:"product"`
	StylingNotes string  `json:"styling_notes,omitempty"`
	RoleInOutfit string  `json:"role_in_outfit"`
}

type OutfitRecommendation struct {
	OutfitID        string       `json:"outfit_id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Items           []OutfitItem `json:"items"`
	TotalPrice      float64      `json:"total_price"`
	StylingTips     []string     `json:"styling_tips,omitempty"`
	ConfidenceScore float64      `json:"confidence_score"`
	Reasoning       string       `json:"reasoning,omitempty"`
}

// StylistResponse is the complete answer to one query. This is the unit
// cached and returned; a caller always gets one, whatever failed upstream.
type StylistResponse struct {
	ResponseID           string                 `json:"response_id"`
	UserQuery            string                 `json:"user_query"`
	Recommendations      []OutfitRecommendation `json:"recommendations"`
	IndividualItems      []Product              `json:"individual_items,omitempty"`
	StylingAdvice        string                 `json:"styling_advice,omitempty"`
	PersonalizationNotes string                 `json:"personalization_notes,omitempty"`
	ProcessingTimeMs     int64                  `json:"processing_time_ms"`
	CreatedAt            time.Time              `json:"created_at"`
}
