package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/aguiarsc/numen/internal"
)

// openAI generates text through the OpenAI chat completions API.
type openAI struct {
	client      openai.Client
	apiKey      string
	model       string
	temperature float64
}

func newOpenAI(cfg internal.OpenAIConfig, temperature float64) *openAI {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &openAI{
		client:      openai.NewClient(opts...),
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
	}
}

func (p *openAI) Name() string { return internal.ProviderOpenAI }

func (p *openAI) Available(_ context.Context) bool { return p.apiKey != "" }

func (p *openAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(p.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
