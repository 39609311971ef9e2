// internal/llm/openai.go
package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/stylisthq/stylist-backend/internal/config"
)

type openAIGateway struct {
	client *openai.Client
	model  string
}

func newOpenAIGateway(cfg config.OpenAIConfig) *openAIGateway {
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &openAIGateway{
		client: &client,
		model:  cfg.Model,
	}
}

func (g *openAIGateway) Name() string {
	return "openai"
}

func (g *openAIGateway) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	return g.complete(ctx, system, user, temperature, maxTokens, false)
}

func (g *openAIGateway) CompleteJSON(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	return g.complete(ctx, system, user, temperature, maxTokens, true)
}

func (g *openAIGateway) complete(ctx context.Context, system, user string, temperature float64, maxTokens int, jsonMode bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	}

	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
