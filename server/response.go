package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/flairscribe/errors"
)

// RespondWithError inspects err: an *apperrors.AppError carries its own
// status and body; anything else becomes a generic 500.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 with body as-is. The API's response shapes are fixed
// by existing clients, so there is no envelope.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

func errNoRoute(path string) *apperrors.AppError {
	return apperrors.NotFound("route", path)
}
