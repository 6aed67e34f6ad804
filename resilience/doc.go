// Package resilience retries collaborator calls (transcription backends,
// completion models, object storage) with exponential backoff.
//
// By default only errors classified retryable by the errors package are
// retried: timeouts, rate limits, unavailable upstreams and plain errors
// that carry no classification. Context cancellation is never retried.
//
//	text, err := resilience.Retry(ctx, cfg, func() (string, error) {
//	    return backend.Transcribe(ctx, audio, name)
//	})
package resilience
