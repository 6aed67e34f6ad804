package vernacular

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/flairscribe/glossary"
	"github.com/kbukum/flairscribe/llm"
	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/observability"
)

// ChunkError reports a chunk whose expansion failed; its original text was
// kept in the output.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("Error processing chunk %d: %v", e.Index+1, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Result is the outcome of expanding one transcript.
type Result struct {
	Text   string
	Chunks int
	Errors []*ChunkError
}

// Expander annotates transcript jargon using a completion backend.
type Expander struct {
	llm     llm.Provider
	llmCfg  llm.Config
	cfg     Config
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewExpander creates an Expander. llmCfg supplies the model, system prompt
// and sampling settings for each call.
func NewExpander(p llm.Provider, llmCfg llm.Config, cfg Config, metrics *observability.Metrics, log *logger.Logger) *Expander {
	cfg.ApplyDefaults()
	llmCfg.ApplyDefaults()
	return &Expander{llm: p, llmCfg: llmCfg, cfg: cfg, metrics: metrics, log: log.WithComponent("vernacular")}
}

// Expand splits text into chunks, expands each against terms and joins the
// results with single spaces in their original order. A chunk whose call
// fails keeps its original text and is reported in Result.Errors. Only ctx
// cancellation fails the whole expansion.
func (e *Expander) Expand(ctx context.Context, text string, terms *glossary.Glossary) (*Result, error) {
	ctx, span := observability.StartSpan(ctx, "vernacular.expand",
		attribute.Int("glossary.terms", terms.Len()),
		attribute.Int("text.length", len(text)),
	)
	defer span.End()

	chunks := SplitIntoChunks(text, e.cfg.ChunkSize)
	span.SetAttributes(attribute.Int("chunks", len(chunks)))

	out := make([]string, len(chunks))
	failures := make([]*ChunkError, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			expanded, err := e.expandChunk(gctx, chunk, terms)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				e.log.WithContext(ctx).Warn("chunk expansion failed, keeping original", logger.Fields(
					"chunk", i,
					logger.FieldProvider, e.llm.Name(),
					logger.FieldError, err.Error(),
				))
				failures[i] = &ChunkError{Index: i, Err: err}
				out[i] = chunk
				return nil
			}
			out[i] = expanded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	res := &Result{Text: strings.Join(out, " "), Chunks: len(chunks)}
	for _, f := range failures {
		if f != nil {
			res.Errors = append(res.Errors, f)
		}
	}
	return res, nil
}

func (e *Expander) expandChunk(ctx context.Context, chunk string, terms *glossary.Glossary) (string, error) {
	start := time.Now()
	resp, err := e.llm.Complete(ctx, e.llmCfg.Request(BuildPrompt(e.cfg.Domain, chunk, terms)))
	e.metrics.RecordExpansion(ctx, e.llm.Name(), time.Since(start), err)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}
