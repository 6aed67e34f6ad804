package api

import (
	"context"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/observability"
	"github.com/kbukum/flairscribe/server"
	"github.com/kbukum/flairscribe/storage"
	"github.com/kbukum/flairscribe/transcription"
	"github.com/kbukum/flairscribe/util"
)

// AudioField is the multipart field audio uploads arrive under.
const AudioField = "audiofiles"

// ProcessedFile is one successful transcription.
type ProcessedFile struct {
	Filename      string `json:"filename"`
	Transcription string `json:"transcription"`
}

// TranscribeResponse lists successes and per-file failures.
type TranscribeResponse struct {
	ProcessedFiles []ProcessedFile `json:"processed_files"`
	Errors         []string        `json:"errors"`
}

// Transcribe stages every supported audio upload, transcribes them
// concurrently and reports results in upload order. Uploads with other
// extensions are skipped.
func (h *Handler) Transcribe(c *gin.Context) {
	ctx, span := observability.StartSpan(c.Request.Context(), "api.transcribe")
	defer span.End()

	form, err := parseForm(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	files, err := requireFiles(form, AudioField, "No audiofiles provided", "Empty audiofiles filename")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	p, err := h.opts.Transcribers.Get(ctx)
	if err != nil {
		observability.RecordError(span, err)
		server.RespondWithError(c, errors.ServiceUnavailable("transcription").WithCause(err))
		return
	}

	stage := storage.NewStage(h.opts.Storage, h.opts.StagingPrefix)
	defer h.cleanup(ctx, stage)

	resp := TranscribeResponse{ProcessedFiles: []ProcessedFile{}, Errors: []string{}}
	items := make([]transcription.Item, 0, len(files))
	for _, fh := range files {
		name := util.SecureFilename(fh.Filename)
		if !util.HasExtension(name, h.opts.Transcription.Extensions) {
			h.log.WithContext(ctx).Debug("skipping unsupported upload", logger.Fields(logger.FieldFilename, fh.Filename))
			continue
		}
		key, err := stageUpload(ctx, stage, name, fh)
		if err != nil {
			resp.Errors = append(resp.Errors, transcription.Result{Filename: name, Err: err}.ErrorMessage())
			continue
		}
		items = append(items, transcription.Item{
			Name: util.BaseName(name),
			Request: transcription.Request{
				Filename: name,
				Open:     stage.Opener(ctx, key),
				Language: h.opts.Transcription.Language,
			},
		})
	}
	span.SetAttributes(
		attribute.Int("uploads", len(files)),
		attribute.Int("transcribed", len(items)),
		attribute.String("provider", p.Name()),
	)

	batch := transcription.NewBatch(p, h.opts.Transcription.Concurrency, h.opts.Metrics, h.opts.Logger)
	for _, r := range batch.Run(ctx, items) {
		if r.Err != nil {
			resp.Errors = append(resp.Errors, r.ErrorMessage())
			continue
		}
		resp.ProcessedFiles = append(resp.ProcessedFiles, ProcessedFile{Filename: r.Name, Transcription: r.Text})
	}

	if err := ctx.Err(); err != nil {
		server.RespondWithError(c, errors.FromContext(ctx, "transcribe"))
		return
	}

	h.log.WithContext(ctx).Info("transcription batch finished", logger.Fields(
		logger.FieldProvider, p.Name(),
		logger.FieldCount, len(resp.ProcessedFiles),
		"failed", len(resp.Errors),
	))
	server.RespondOK(c, resp)
}

func stageUpload(ctx context.Context, stage *storage.Stage, name string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", errors.StorageError("open upload", err)
	}
	defer f.Close() //nolint:errcheck
	return stage.Put(ctx, name, f)
}
