// internal/services/query_classifier.go
package services

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/stylisthq/stylist-backend/internal/models"
)

// QueryClassifier routes raw query text to an intent before any expensive
// work happens. Greetings, help requests and feedback short-circuit the
// pipeline entirely with canned responses.
type QueryClassifier struct{}

func NewQueryClassifier() *QueryClassifier {
	return &QueryClassifier{}
}

var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(hi|hello|hey|howdy|yo|sup)\s*[!.?]*\s*$`),
	regexp.MustCompile(`(?i)^\s*(hi|hello|hey)\s+there\s*[!.?]*\s*$`),
	regexp.MustCompile(`(?i)^\s*good\s+(morning|afternoon|evening)\s*[!.?]*\s*$`),
	regexp.MustCompile(`(?i)^\s*(greetings|what'?s\s+up)\s*[!.?]*\s*$`),
}

var helpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bhelp\b`),
	regexp.MustCompile(`(?i)how\s+(do|does)\s+(you|this)\s+work`),
	regexp.MustCompile(`(?i)what\s+can\s+you\s+do`),
	regexp.MustCompile(`(?i)what\s+do\s+you\s+do`),
	regexp.MustCompile(`(?i)\b(instructions|tutorial|guide)\b`),
}

var feedbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(bug|broken|glitch|crash)\b`),
	regexp.MustCompile(`(?i)\b(doesn'?t|not)\s+work(ing)?\b`),
	regexp.MustCompile(`(?i)\b(feedback|suggestion|complaint|complain)\b`),
	regexp.MustCompile(`(?i)\b(report|found)\s+(a|an)\s+(issue|problem|error)\b`),
}

var productRequestPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(show|find|get)\s+me\b`),
	regexp.MustCompile(`(?i)\b(i\s+(need|want)|looking\s+for)\b`),
	regexp.MustCompile(`(?i)what\s+should\s+i\s+wear`),
	regexp.MustCompile(`(?i)\b(recommend|suggest)\b`),
	regexp.MustCompile(`(?i)\b(outfit|dress|clothes|something)\s+(for|to\s+wear)\b`),
	regexp.MustCompile(`(?i)\b(under|less\s+than|below)\s+\$?\d+`),
	regexp.MustCompile(`(?i)\bwear\s+to\b`),
}

var boostPhrases = []string{
	"what should i wear",
	"outfit for",
	"style for",
	"dress for",
}

var stylingKeywords = map[string]struct{}{}

func init() {
	keywords := []string{
		// colors
		"black", "white", "red", "blue", "green", "yellow", "pink", "purple",
		"brown", "grey", "gray", "navy", "beige", "cream", "gold", "silver",
		"burgundy", "tan", "camel", "blush",
		// categories
		"dress", "dresses", "shirt", "blouse", "top", "tops", "pants",
		"jeans", "skirt", "shorts", "jacket", "coat", "blazer", "sweater",
		"hoodie", "suit", "shoes", "sneakers", "boots", "heels", "sandals",
		"bag", "purse", "necklace", "earrings", "jewelry", "accessories",
		// occasions
		"casual", "formal", "work", "office", "party", "wedding", "date",
		"brunch", "dinner", "beach", "vacation", "workout", "gym", "cocktail",
		"interview",
		// style vocabulary
		"outfit", "style", "wear", "fashion", "look", "trendy", "chic",
		"elegant", "classy", "comfortable", "cute", "stylish",
	}
	for _, kw := range keywords {
		stylingKeywords[kw] = struct{}{}
	}
}

// Classify applies checks in strict priority order; the first match wins.
func (c *QueryClassifier) Classify(text string) (models.IntentType, float64) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, p := range greetingPatterns {
		if p.MatchString(normalized) {
			return models.IntentGreeting, 0.95
		}
	}

	for _, p := range helpPatterns {
		if p.MatchString(normalized) {
			return models.IntentHelp, 0.9
		}
	}

	for _, p := range feedbackPatterns {
		if p.MatchString(normalized) {
			return models.IntentFeedback, 0.9
		}
	}

	for _, p := range productRequestPatterns {
		if p.MatchString(normalized) {
			return models.IntentRecommendation, 0.9
		}
	}

	density := stylingDensity(normalized)
	if density > 0.3 {
		if density > 0.95 {
			density = 0.95
		}
		return models.IntentRecommendation, density
	}

	// Ambiguous fashion questions route to Recommendation so the user always
	// gets products back; only zero-density questions stay general.
	if isQuestion(normalized) {
		if density > 0.1 {
			return models.IntentRecommendation, 0.6
		}
		return models.IntentGeneralQuestion, 0.7
	}

	if len(strings.Fields(normalized)) > 3 {
		return models.IntentRecommendation, 0.5
	}

	return models.IntentUnknown, 0.3
}

// ShouldSkipProcessing reports whether the intent gets a canned response
// without retrieval or synthesis. This is the primary latency control.
func (c *QueryClassifier) ShouldSkipProcessing(intent models.IntentType) bool {
	switch intent {
	case models.IntentGreeting, models.IntentHelp, models.IntentFeedback:
		return true
	}
	return false
}

var greetingResponses = []string{
	"Hello! I'm your personal AI stylist. Tell me what you're dressing for and I'll put together some looks for you.",
	"Hi there! Looking for outfit ideas? Describe the occasion and I'll find pieces that work.",
	"Hey! Ready to refresh your wardrobe? Ask me for anything, like \"what should I wear to a summer wedding?\"",
	"Hello! I can help you find outfits, match pieces you already love, or suggest looks for any occasion.",
	"Hi! Tell me about your style, your budget, or your plans, and I'll curate recommendations just for you.",
}

const helpResponse = "I'm an AI stylist. Ask me things like \"what should I wear to a casual brunch?\" or " +
	"\"find me a work outfit under $150\". You can mention colors, occasions, budgets, and categories, " +
	"and I'll search the catalog and put together complete outfits with styling tips."

const feedbackResponse = "Thank you for the feedback! I've noted it so the team can take a look. " +
	"In the meantime, feel free to keep asking for styling recommendations."

// CannedResponse returns the fixed reply for short-circuited intents.
// Greetings draw from a fixed pool at random.
func (c *QueryClassifier) CannedResponse(intent models.IntentType) string {
	switch intent {
	case models.IntentGreeting:
		return greetingResponses[rand.Intn(len(greetingResponses))]
	case models.IntentHelp:
		return helpResponse
	case models.IntentFeedback:
		return feedbackResponse
	}
	return ""
}

// stylingDensity scores the fraction of tokens that are fashion vocabulary,
// boosted when a strong phrasal cue is present, capped at 1.0.
func stylingDensity(normalized string) float64 {
	tokens := strings.Fields(strings.Map(stripPunct, normalized))
	if len(tokens) == 0 {
		return 0
	}

	matches := 0
	for _, token := range tokens {
		if _, ok := stylingKeywords[token]; ok {
			matches++
		}
	}

	score := float64(matches) / float64(len(tokens))
	for _, phrase := range boostPhrases {
		if strings.Contains(normalized, phrase) {
			score += 0.5
			break
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

var interrogatives = []string{"what", "which", "how", "where", "when", "why", "who", "can", "could", "should", "do", "does", "is", "are"}

func isQuestion(normalized string) bool {
	if strings.HasSuffix(strings.TrimSpace(normalized), "?") {
		return true
	}
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return false
	}
	for _, w := range interrogatives {
		if fields[0] == w {
			return true
		}
	}
	return false
}

func stripPunct(r rune) rune {
	switch r {
	case '?', '!', '.', ',', ';', ':':
		return ' '
	}
	return r
}
