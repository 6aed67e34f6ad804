package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/flairscribe/llm"
	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/observability"
	"github.com/kbukum/flairscribe/storage"
	"github.com/kbukum/flairscribe/transcription"
	"github.com/kbukum/flairscribe/vernacular"
)

// Source hands out the provider to use for one request.
// *provider.Manager satisfies it.
type Source[T any] interface {
	Get(ctx context.Context) (T, error)
}

// Options carries everything the handlers depend on.
type Options struct {
	// GroupBySpeaker is the speechbox mode when a request does not set one.
	GroupBySpeaker bool

	Storage       storage.Storage
	StagingPrefix string

	Transcribers  Source[transcription.Provider]
	Transcription transcription.Config

	Completers Source[llm.Provider]
	LLM        llm.Config
	Vernacular vernacular.Config

	Metrics *observability.Metrics
	Logger  *logger.Logger
}

// Handler serves the processing endpoints.
type Handler struct {
	opts Options
	log  *logger.Logger
}

// New creates a Handler. Zero-valued config sections get their defaults.
func New(opts Options) *Handler {
	opts.Transcription.ApplyDefaults()
	opts.LLM.ApplyDefaults()
	opts.Vernacular.ApplyDefaults()
	if opts.StagingPrefix == "" {
		opts.StagingPrefix = storage.DefaultPrefix
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Handler{opts: opts, log: opts.Logger.WithComponent("api")}
}

// Register mounts the endpoints on r. Authentication is the caller's
// concern and belongs on r.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/speechbox", h.Speechbox)
	r.POST("/transcribe", h.Transcribe)
	r.POST("/vernacular", h.Vernacular)
}

// cleanupTimeout bounds staging cleanup after the request context is gone.
const cleanupTimeout = 30 * time.Second

// cleanup removes a request's staged files even if the client went away.
func (h *Handler) cleanup(ctx context.Context, stage *storage.Stage) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := stage.Cleanup(ctx); err != nil {
		h.log.WithContext(ctx).Warn("staging cleanup failed", logger.Fields(
			"prefix", stage.Prefix(),
			logger.FieldError, err.Error(),
		))
	}
}
