// internal/llm/gateway.go
package llm

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stylisthq/stylist-backend/internal/config"
)

// Gateway is the completion capability the synthesis engine consumes.
// CompleteJSON requests machine-parseable object output; Complete returns
// free text.
type Gateway interface {
	Name() string
	Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
	CompleteJSON(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}

// NewGateway picks a provider once at construction: OpenAI when configured,
// Anthropic otherwise, and the deterministic mock when neither has a key.
// The mock keeps the service fully operational offline and in tests.
func NewGateway(cfg *config.Config) Gateway {
	log := logrus.WithField("component", "llm")

	switch {
	case cfg.OpenAI.APIKey != "":
		log.WithField("provider", "openai").Info("LLM gateway initialized")
		return newOpenAIGateway(cfg.OpenAI)
	case cfg.Anthropic.APIKey != "":
		log.WithField("provider", "anthropic").Info("LLM gateway initialized")
		return newAnthropicGateway(cfg.Anthropic)
	default:
		log.Warn("No LLM provider configured, using deterministic mock responder")
		return NewMockGateway()
	}
}
