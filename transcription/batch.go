package transcription

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/observability"
)

// Item is one file of a batch.
type Item struct {
	// Name is reported back in Result.Name.
	Name    string
	Request Request
}

// Result is the outcome for one file of a batch.
type Result struct {
	// Name is the upload's base name without extension.
	Name string
	// Filename is the sanitised upload name, extension included.
	Filename string
	Text     string
	Err      error
}

// ErrorMessage renders a failed result the way API clients expect it.
func (r Result) ErrorMessage() string {
	name := r.Filename
	if name == "" {
		name = r.Name
	}
	return fmt.Sprintf("Error processing %s: %v", name, r.Err)
}

// Batch transcribes several files of one request through a shared provider.
type Batch struct {
	provider    Provider
	concurrency int
	metrics     *observability.Metrics
	log         *logger.Logger
}

// NewBatch creates a Batch. concurrency below 1 means one file at a time.
func NewBatch(p Provider, concurrency int, metrics *observability.Metrics, log *logger.Logger) *Batch {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Batch{provider: p, concurrency: concurrency, metrics: metrics, log: log.WithComponent("transcription")}
}

// Run transcribes every item, at most concurrency at a time. results[i]
// belongs to items[i]; per-file failures land in Result.Err and never stop
// the rest of the batch.
func (b *Batch) Run(ctx context.Context, items []Item) []Result {
	results := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, item := range items {
		results[i].Name = item.Name
		results[i].Filename = item.Request.Filename
		g.Go(func() error {
			sctx, span := observability.StartSpan(gctx, "transcription.file")
			defer span.End()

			resp, err := b.provider.Transcribe(sctx, item.Request)
			b.metrics.RecordTranscription(sctx, b.provider.Name(), err)
			if err != nil {
				observability.RecordError(span, err)
				b.log.WithContext(ctx).Error("transcription failed", logger.Fields(
					logger.FieldProvider, b.provider.Name(),
					logger.FieldFilename, item.Request.Filename,
					logger.FieldError, err.Error(),
				))
				results[i].Err = err
				return nil
			}
			results[i].Text = resp.Text
			return nil
		})
	}
	_ = g.Wait()
	return results
}
