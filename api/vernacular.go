package api

import (
	"context"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/flairscribe/document"
	"github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/glossary"
	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/observability"
	"github.com/kbukum/flairscribe/server"
	"github.com/kbukum/flairscribe/storage"
	"github.com/kbukum/flairscribe/util"
	"github.com/kbukum/flairscribe/vernacular"
)

// GlossaryField is the multipart field glossary files arrive under.
const GlossaryField = "vernacular"

// VernacularResponse is the expanded transcript with counters. Errors lists
// glossary files that failed to load and chunks kept unexpanded.
type VernacularResponse struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	TermsProcessed  int      `json:"terms_processed"`
	ChunksProcessed int      `json:"chunks_processed"`
	ProcessedText   string   `json:"processed_text"`
	Errors          []string `json:"errors"`
}

// Vernacular expands the jargon of an uploaded transcript using the
// uploaded glossaries.
func (h *Handler) Vernacular(c *gin.Context) {
	ctx, span := observability.StartSpan(c.Request.Context(), "api.vernacular")
	defer span.End()

	form, err := parseForm(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	transcripts, err := requireFiles(form, document.Field, "No transcription file provided", "Empty transcription filename")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if _, err := requireFiles(form, GlossaryField, "No vernacular files provided", "Empty vernacular filename"); err != nil {
		server.RespondWithError(c, err)
		return
	}

	text, err := readTranscript(transcripts[0])
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	p, err := h.opts.Completers.Get(ctx)
	if err != nil {
		observability.RecordError(span, err)
		server.RespondWithError(c, errors.ServiceUnavailable("llm").WithCause(err))
		return
	}

	stage := storage.NewStage(h.opts.Storage, h.opts.StagingPrefix)
	defer h.cleanup(ctx, stage)

	resp := VernacularResponse{
		Status:  "success",
		Message: "Transcription processed successfully",
		Errors:  []string{},
	}

	sources := h.stageGlossaries(ctx, stage, form.File[GlossaryField], &resp)
	terms, fileErrs, err := glossary.LoadAll(ctx, sources, h.opts.Vernacular.GlossaryConcurrency)
	if err != nil {
		server.RespondWithError(c, errors.FromContext(ctx, "load glossary"))
		return
	}
	for _, fe := range fileErrs {
		h.log.WithContext(ctx).Warn("glossary file skipped", logger.Fields(
			logger.FieldFilename, fe.Name,
			logger.FieldError, fe.Err.Error(),
		))
		resp.Errors = append(resp.Errors, fe.Error())
	}
	h.opts.Metrics.RecordGlossary(ctx, terms.Len())

	expander := vernacular.NewExpander(p, h.opts.LLM, h.opts.Vernacular, h.opts.Metrics, h.opts.Logger)
	res, err := expander.Expand(ctx, text, terms)
	if err != nil {
		observability.RecordError(span, err)
		server.RespondWithError(c, errors.FromContext(ctx, "vernacular expansion"))
		return
	}
	for _, ce := range res.Errors {
		resp.Errors = append(resp.Errors, ce.Error())
	}

	resp.TermsProcessed = terms.Len()
	resp.ChunksProcessed = res.Chunks
	resp.ProcessedText = res.Text
	span.SetAttributes(
		attribute.Int("glossary.terms", terms.Len()),
		attribute.Int("chunks", res.Chunks),
		attribute.Int("errors", len(resp.Errors)),
	)

	h.log.WithContext(ctx).Info("vernacular expansion finished", logger.Fields(
		logger.FieldProvider, p.Name(),
		"terms", resp.TermsProcessed,
		"chunks", resp.ChunksProcessed,
		"failed", len(resp.Errors),
	))
	server.RespondOK(c, resp)
}

func readTranscript(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", errors.InvalidFormat(document.Field, "Failed to read text file: "+err.Error())
	}
	defer f.Close() //nolint:errcheck
	return document.Extract(fh.Filename, f)
}

// stageGlossaries stores each glossary upload and returns sources reading
// from the stage. An upload that cannot be staged is reported in resp.
func (h *Handler) stageGlossaries(ctx context.Context, stage *storage.Stage, files []*multipart.FileHeader, resp *VernacularResponse) []glossary.Source {
	sources := make([]glossary.Source, 0, len(files))
	for _, fh := range files {
		name := util.SecureFilename(fh.Filename)
		key, err := stageUpload(ctx, stage, name, fh)
		if err != nil {
			resp.Errors = append(resp.Errors, (&glossary.FileError{Name: name, Err: err}).Error())
			continue
		}
		sources = append(sources, glossary.Source{Name: name, Open: stage.Opener(ctx, key)})
	}
	return sources
}
