package llm

import (
	"context"
	"time"

	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/resilience"
)

// WithRetry wraps p so failed completions are retried per cfg.
func WithRetry(p Provider, cfg resilience.RetryConfig, log *logger.Logger) Provider {
	cfg.ApplyDefaults()
	return &retrying{Provider: p, cfg: cfg, log: log.WithComponent("llm")}
}

type retrying struct {
	Provider
	cfg resilience.RetryConfig
	log *logger.Logger
}

func (r *retrying) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	cfg := r.cfg
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		r.log.WithContext(ctx).Warn("completion attempt failed, retrying", logger.Fields(
			logger.FieldProvider, r.Name(),
			"attempt", attempt,
			"backoff", backoff.String(),
			logger.FieldError, err.Error(),
		))
	}
	return resilience.Retry(ctx, cfg, func() (*CompletionResponse, error) {
		return r.Provider.Complete(ctx, req)
	})
}
