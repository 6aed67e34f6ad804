// Package openai implements llm.Provider with OpenAI chat completions.
package openai

import (
	"context"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/llm"
	"github.com/kbukum/flairscribe/openaiclient"
)

// ProviderName is the registered name for this provider.
const ProviderName = "openai"

// Provider implements llm.Provider.
type Provider struct {
	client *goopenai.Client
	model  string
}

var _ llm.Provider = (*Provider)(nil)

// New creates a provider. model is used when a request names none.
func New(cfg openaiclient.Config, model string) (*Provider, error) {
	client, err := openaiclient.New(cfg)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = goopenai.GPT4o
	}
	return &Provider{client: client, model: model}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports true once the client is configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.client != nil }

// Complete runs one non-streaming chat completion.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	msgs := req.WithMessages()
	chat := make([]goopenai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		chat[i] = goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	creq := goopenai.ChatCompletionRequest{
		Model:     model,
		Messages:  chat,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature != nil {
		creq.Temperature = float32(*req.Temperature)
	}

	resp, err := p.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return nil, openaiclient.Classify(ctx, ProviderName, err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.ExternalServiceError(ProviderName, nil).WithDetail("reason", "no choices returned")
	}

	return &llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
