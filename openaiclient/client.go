// Package openaiclient builds go-openai clients from service configuration
// and maps their failures onto AppErrors.
package openaiclient

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/kbukum/flairscribe/errors"
)

// Config is the shared openai section: one key serves both chat
// completions and audio transcription.
type Config struct {
	APIKey       string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL      string        `yaml:"base_url" mapstructure:"base_url"`
	Organization string        `yaml:"organization" mapstructure:"organization"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets a request timeout long enough for a full chunk
// expansion at the maximum completion length.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Minute
	}
}

// Validate requires an API key.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	return nil
}

// New returns a client for cfg.
func New(cfg Config) (*openai.Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.OrgID = cfg.Organization
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return openai.NewClientWithConfig(clientCfg), nil
}

// Classify converts a go-openai error into an AppError so retry and the
// handlers can tell throttling and outages from bad requests.
func Classify(ctx context.Context, service string, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := errors.FromContext(ctx, service); ctxErr != nil {
		return ctxErr
	}

	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) {
		return errors.FromHTTPStatus(service, apiErr.HTTPStatusCode, apiErr.Message).WithCause(err)
	}
	var reqErr *openai.RequestError
	if stderrors.As(err, &reqErr) {
		return errors.FromHTTPStatus(service, reqErr.HTTPStatusCode, string(reqErr.Body)).WithCause(err)
	}
	return errors.ExternalServiceError(service, err)
}
