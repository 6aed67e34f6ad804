package transcription

import (
	"context"
	"time"

	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/resilience"
)

// WithRetry wraps p so failed calls are retried per cfg.
func WithRetry(p Provider, cfg resilience.RetryConfig, log *logger.Logger) Provider {
	cfg.ApplyDefaults()
	return &retrying{Provider: p, cfg: cfg, log: log.WithComponent("transcription")}
}

type retrying struct {
	Provider
	cfg resilience.RetryConfig
	log *logger.Logger
}

func (r *retrying) Transcribe(ctx context.Context, req Request) (*Response, error) {
	cfg := r.cfg
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		r.log.WithContext(ctx).Warn("transcription attempt failed, retrying", logger.Fields(
			logger.FieldProvider, r.Name(),
			logger.FieldFilename, req.Filename,
			"attempt", attempt,
			"backoff", backoff.String(),
			logger.FieldError, err.Error(),
		))
	}
	return resilience.Retry(ctx, cfg, func() (*Response, error) {
		return r.Provider.Transcribe(ctx, req)
	})
}
