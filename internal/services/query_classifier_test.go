// internal/services/query_classifier_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stylisthq/stylist-backend/internal/models"
)

func TestClassifyIntents(t *testing.T) {
	classifier := NewQueryClassifier()

	tests := []struct {
		name          string
		query         string
		wantIntent    models.IntentType
		minConfidence float64
	}{
		{"plain greeting", "hello", models.IntentGreeting, 0.9},
		{"greeting with punctuation", "Hey there!", models.IntentGreeting, 0.9},
		{"good morning", "good morning", models.IntentGreeting, 0.9},
		{"help request", "what can you do?", models.IntentHelp, 0.85},
		{"explicit help", "help", models.IntentHelp, 0.85},
		{"bug report", "the search is broken", models.IntentFeedback, 0.85},
		{"feedback", "I have some feedback about the results", models.IntentFeedback, 0.85},
		{"direct product request", "show me black dresses", models.IntentRecommendation, 0.85},
		{"need phrasing", "I need a jacket for winter", models.IntentRecommendation, 0.85},
		{"budget phrasing", "work clothes under $150", models.IntentRecommendation, 0.85},
		{"what should i wear", "what should I wear to a wedding", models.IntentRecommendation, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, confidence := classifier.Classify(tt.query)
			assert.Equal(t, tt.wantIntent, intent)
			assert.GreaterOrEqual(t, confidence, tt.minConfidence)
		})
	}
}

func TestClassifyStylingDensity(t *testing.T) {
	classifier := NewQueryClassifier()

	// Heavy fashion vocabulary without any request pattern still routes to
	// recommendation through the density path.
	intent, confidence := classifier.Classify("casual brunch outfit ideas")
	assert.Equal(t, models.IntentRecommendation, intent)
	assert.Greater(t, confidence, 0.3)
	assert.LessOrEqual(t, confidence, 0.95)
}

func TestClassifyAmbiguousQuestions(t *testing.T) {
	classifier := NewQueryClassifier()

	// A question with some fashion vocabulary gets products, not prose.
	intent, confidence := classifier.Classify("is denim appropriate at a nice dinner")
	assert.Equal(t, models.IntentRecommendation, intent)
	assert.InDelta(t, 0.6, confidence, 0.001)

	// A question with no fashion vocabulary stays general.
	intent, confidence = classifier.Classify("what time do you open tomorrow")
	assert.Equal(t, models.IntentGeneralQuestion, intent)
	assert.InDelta(t, 0.7, confidence, 0.001)
}

func TestClassifyFallbacks(t *testing.T) {
	classifier := NewQueryClassifier()

	// Longer statements default to recommendation at low confidence.
	intent, confidence := classifier.Classify("some random words about nothing in particular")
	assert.Equal(t, models.IntentRecommendation, intent)
	assert.InDelta(t, 0.5, confidence, 0.001)

	intent, confidence = classifier.Classify("ok then")
	assert.Equal(t, models.IntentUnknown, intent)
	assert.InDelta(t, 0.3, confidence, 0.001)
}

func TestShouldSkipProcessing(t *testing.T) {
	classifier := NewQueryClassifier()

	assert.True(t, classifier.ShouldSkipProcessing(models.IntentGreeting))
	assert.True(t, classifier.ShouldSkipProcessing(models.IntentHelp))
	assert.True(t, classifier.ShouldSkipProcessing(models.IntentFeedback))
	assert.False(t, classifier.ShouldSkipProcessing(models.IntentRecommendation))
	assert.False(t, classifier.ShouldSkipProcessing(models.IntentGeneralQuestion))
	assert.False(t, classifier.ShouldSkipProcessing(models.IntentUnknown))
}

func TestCannedResponses(t *testing.T) {
	classifier := NewQueryClassifier()

	assert.Equal(t, helpResponse, classifier.CannedResponse(models.IntentHelp))
	assert.Equal(t, feedbackResponse, classifier.CannedResponse(models.IntentFeedback))
	assert.Empty(t, classifier.CannedResponse(models.IntentRecommendation))

	greeting := classifier.CannedResponse(models.IntentGreeting)
	assert.Contains(t, greetingResponses, greeting)
}
