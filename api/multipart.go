package api

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/flairscribe/errors"
)

// parseForm reads the multipart body. A body cut off by the size limit
// reports 413; anything else that is not a multipart form reports 400.
func parseForm(c *gin.Context) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if tooLarge := bodyTooLarge(err); tooLarge != nil {
			return nil, tooLarge
		}
		return nil, errors.InvalidFormat("body", "Request must be multipart/form-data.").WithCause(err)
	}
	return form, nil
}

// bodyTooLarge reports a read that stopped at the server's body size limit.
// Bodies without a declared length only hit the limit while being read.
func bodyTooLarge(err error) *errors.AppError {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.PayloadTooLarge(maxErr.Limit).WithCause(err)
	}
	return nil
}

// requireFiles returns the uploads under field. missing is reported when
// the field is absent and empty when its first upload has no filename.
func requireFiles(form *multipart.Form, field, missing, empty string) ([]*multipart.FileHeader, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, errors.MissingField(field, missing)
	}
	if files[0].Filename == "" {
		return nil, errors.MissingField(field, empty)
	}
	return files, nil
}
