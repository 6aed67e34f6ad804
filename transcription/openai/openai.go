// Package openai implements transcription.Provider with the OpenAI audio
// transcription API.
package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/flairscribe/openaiclient"
	"github.com/kbukum/flairscribe/transcription"
)

// ProviderName is the registered name for this provider.
const ProviderName = "openai"

// Config selects the transcription model.
type Config struct {
	Model    string `yaml:"model" mapstructure:"model"`
	Language string `yaml:"language" mapstructure:"language"`
}

// Provider implements transcription.Provider.
type Provider struct {
	client *goopenai.Client
	cfg    Config
}

var _ transcription.Provider = (*Provider)(nil)

// New creates a provider using the shared openai client settings.
func New(clientCfg openaiclient.Config, cfg Config) (*Provider, error) {
	client, err := openaiclient.New(clientCfg)
	if err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = goopenai.Whisper1
	}
	return &Provider{client: client, cfg: cfg}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports true once the client is configured. The API has no
// cheap probe, so reachability surfaces on the first call.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.client != nil }

// Transcribe streams the audio to the API and returns its verbose result.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	audio, err := req.Open()
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer audio.Close()

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}

	resp, err := p.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    model,
		FilePath: req.Filename,
		Reader:   audio,
		Language: lang,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, openaiclient.Classify(ctx, ProviderName, err)
	}

	segments := make([]transcription.Segment, len(resp.Segments))
	for i, seg := range resp.Segments {
		segments[i] = transcription.Segment{Start: seg.Start, End: seg.End, Text: seg.Text}
	}
	return &transcription.Response{
		Text:     resp.Text,
		Segments: segments,
		Duration: resp.Duration,
		Language: resp.Language,
	}, nil
}
