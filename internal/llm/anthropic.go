// internal/llm/anthropic.go
package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/stylisthq/stylist-backend/internal/config"
)

type anthropicGateway struct {
	client *anthropic.Client
	model  string
}

func newAnthropicGateway(cfg config.AnthropicConfig) *anthropicGateway {
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &anthropicGateway{
		client: &client,
		model:  cfg.Model,
	}
}

func (g *anthropicGateway) Name() string {
	return "anthropic"
}

func (g *anthropicGateway) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	return g.complete(ctx, system, user, temperature, maxTokens)
}

// The Anthropic API has no structured-output mode comparable to OpenAI's, so
// JSON requests lean on an explicit system-prompt instruction instead.
func (g *anthropicGateway) CompleteJSON(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	system = strings.TrimSpace(system) + " Always respond with valid JSON."
	return g.complete(ctx, system, user, temperature, maxTokens)
}

func (g *anthropicGateway) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}

	if sb.Len() == 0 {
		return "", errors.New("message returned no text content")
	}

	return sb.String(), nil
}
