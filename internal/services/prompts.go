// internal/services/prompts.go
package services

import (
	"fmt"
	"strings"

	"github.com/stylisthq/stylist-backend/internal/models"
)

const stylistSystemPrompt = "You are an expert personal fashion stylist. You recommend outfits from the " +
	"retailer's catalog only, using the exact product IDs you are given. You consider occasion, budget, " +
	"body type, and style preferences, and you explain your choices in a warm, encouraging tone."

const unifiedSystemPrompt = stylistSystemPrompt + " Respond with a single JSON object and nothing else."

// buildUnifiedPrompt asks for everything in one call: expanded search terms,
// product rankings, outfit groupings, and advice, as one JSON object.
func buildUnifiedPrompt(query *models.UserQuery, candidates []models.RetrievalCandidate, profile *models.UserProfile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Customer request: %q\n\n", query.Query)

	if notes := profileSummary(profile); notes != "" {
		fmt.Fprintf(&sb, "Customer profile: %s\n\n", notes)
	}
	if query.Occasion != nil {
		fmt.Fprintf(&sb, "Occasion: %s\n", *query.Occasion)
	}
	if query.Budget != nil {
		fmt.Fprintf(&sb, "Budget: $%.2f\n", *query.Budget)
	}

	sb.WriteString("\nAvailable products:\n")
	sb.WriteString(candidateCatalog(candidates))

	sb.WriteString(`
Return a JSON object with exactly these fields:
{
  "search_terms": ["up to 5 short search phrases that capture the request"],
  "product_rankings": [{"product_id": "...", "score": 0.0, "reason": "..."}],
  "outfits": [{"name": "...", "description": "...", "product_ids": ["..."], "styling_tips": ["..."], "total_price": 0.0}],
  "styling_advice": "2-3 sentences of overall advice"
}
Use only product IDs from the list above. Scores are between 0 and 1. Build 1-3 complete outfits.`)

	return sb.String()
}

func buildSearchExpansionPrompt(query string) string {
	return fmt.Sprintf("Expand this styling request into concrete catalog search terms, one per line, "+
		"at most 10 lines, no numbering and no commentary:\n\n%s", query)
}

func buildRerankPrompt(query *models.UserQuery, candidates []models.RetrievalCandidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Customer request: %q\n\nProducts:\n", query.Query)
	sb.WriteString(candidateCatalog(candidates))
	sb.WriteString("\nList the product IDs in order of relevance to the request, best first, one per line.")
	return sb.String()
}

func buildNarrativePrompt(query *models.UserQuery, candidates []models.RetrievalCandidate, profile *models.UserProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Customer request: %q\n\n", query.Query)
	if notes := profileSummary(profile); notes != "" {
		fmt.Fprintf(&sb, "Customer profile: %s\n\n", notes)
	}
	sb.WriteString("Available products:\n")
	sb.WriteString(candidateCatalog(candidates))
	sb.WriteString("\nPut together 1-3 complete outfits from these products. Label each one \"Outfit 1\", " +
		"\"Outfit 2\" and so on, reference products by their IDs, and include a couple of styling tips per outfit.")
	return sb.String()
}

func buildAdvicePrompt(query string, profile *models.UserProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Style question: %s\n", query)
	if notes := profileSummary(profile); notes != "" {
		fmt.Fprintf(&sb, "\nCustomer profile: %s\n", notes)
	}
	sb.WriteString("\nAnswer in a few friendly, practical sentences.")
	return sb.String()
}

func candidateCatalog(candidates []models.RetrievalCandidate) string {
	var sb strings.Builder
	for _, c := range candidates {
		p := c.Product
		fmt.Fprintf(&sb, "- %s | %s | %s | $%.2f", p.ProductID, p.Name, p.Category, p.DisplayPrice())
		if len(p.Attributes.Colors) > 0 {
			fmt.Fprintf(&sb, " | colors: %s", strings.Join(p.Attributes.Colors, ", "))
		}
		if p.Attributes.Brand != "" {
			fmt.Fprintf(&sb, " | %s", p.Attributes.Brand)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func profileSummary(profile *models.UserProfile) string {
	if profile == nil {
		return ""
	}

	var parts []string
	if profile.BodyType != nil {
		parts = append(parts, fmt.Sprintf("%s body type", *profile.BodyType))
	}
	if prefs := profile.StylePreferences; prefs != nil {
		if len(prefs.StylePersonalities) > 0 {
			styles := make([]string, len(prefs.StylePersonalities))
			for i, s := range prefs.StylePersonalities {
				styles[i] = string(s)
			}
			parts = append(parts, fmt.Sprintf("%s style", strings.Join(styles, "/")))
		}
		if len(prefs.PreferredColors) > 0 {
			parts = append(parts, fmt.Sprintf("likes %s", strings.Join(prefs.PreferredColors, ", ")))
		}
		if len(prefs.AvoidedColors) > 0 {
			parts = append(parts, fmt.Sprintf("avoids %s", strings.Join(prefs.AvoidedColors, ", ")))
		}
	}
	if profile.BudgetMax != nil {
		parts = append(parts, fmt.Sprintf("budget up to $%.2f", *profile.BudgetMax))
	}

	return strings.Join(parts, ", ")
}
