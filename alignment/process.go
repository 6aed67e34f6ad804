package alignment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/flairscribe/diarization"
	"github.com/kbukum/flairscribe/observability"
)

// Result is the outcome of Process.
type Result struct {
	Outputs []Output
	// Mode is the mode actually applied after the request's override.
	Mode Mode
	// Speakers lists the distinct labels in order of first appearance.
	Speakers []string
	Turns    int
}

// Process validates req, merges its diarization into speaker turns and
// aligns the ASR chunks against them. fallback applies when the request
// does not choose a mode. Validation happens before any alignment, so a
// malformed payload never yields partial output.
func Process(ctx context.Context, req *Request, fallback Mode) (*Result, error) {
	_, span := observability.StartSpan(ctx, "alignment.process")
	defer span.End()

	if err := req.Validate(); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	turns, err := diarization.MergeTurns(req.Segments())
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	res := &Result{
		Mode:     req.Mode(fallback),
		Speakers: diarization.Speakers(turns),
		Turns:    len(turns),
	}
	res.Outputs = Align(turns, req.Chunks(), res.Mode)

	span.SetAttributes(
		attribute.Int("alignment.segments", len(req.Diarization)),
		attribute.Int("alignment.turns", res.Turns),
		attribute.Int("alignment.chunks", len(req.ASR)),
		attribute.Int("alignment.records", len(res.Outputs)),
		attribute.String("alignment.mode", res.Mode.String()),
		attribute.StringSlice("alignment.speakers", res.Speakers),
	)
	return res, nil
}
