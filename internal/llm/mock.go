// internal/llm/mock.go
package llm

import (
	"context"
)

// MockGateway is the offline responder used when no provider is configured
// and in tests. Its answers are fixed so pipeline behavior stays
// deterministic end to end.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) Name() string {
	return "mock"
}

func (g *MockGateway) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	return "Outfit 1: A versatile combination built around the strongest matches in the catalog.\n" +
		"Tip: Pair the pieces with neutral accessories for an effortless look.\n" +
		"Style the outfit up or down depending on the occasion.", nil
}

func (g *MockGateway) CompleteJSON(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	return "{}", nil
}
