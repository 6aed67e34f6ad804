package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/flairscribe/alignment"
	"github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/server"
)

// Speechbox aligns ASR chunks to diarized speaker turns.
func (h *Handler) Speechbox(c *gin.Context) {
	ctx := c.Request.Context()

	var req alignment.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		if tooLarge := bodyTooLarge(err); tooLarge != nil {
			server.RespondWithError(c, tooLarge)
			return
		}
		server.RespondWithError(c, errors.InvalidFormat("body",
			"Request body must be a JSON object with diarization and asr arrays.").WithCause(err))
		return
	}

	res, err := alignment.Process(ctx, &req, alignment.ModeFor(h.opts.GroupBySpeaker))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	h.opts.Metrics.RecordAlignment(ctx, len(res.Outputs), res.Mode.String())

	h.log.WithContext(ctx).Debug("speechbox aligned", logger.Fields(
		"segments", len(req.Diarization),
		"turns", res.Turns,
		"speakers", res.Speakers,
		"chunks", len(req.ASR),
		logger.FieldCount, len(res.Outputs),
		"mode", res.Mode.String(),
	))
	server.RespondOK(c, res.Outputs)
}
