package middleware

import (
	"net/http"

	"github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/util"
)

const defaultMaxBodySize = 100 << 20

// BodySizeLimit caps request bodies at maxSize ("100MB", "512KB"). Requests
// declaring a larger Content-Length are refused up front; others fail on
// read once the limit is crossed.
func BodySizeLimit(maxSize string) Middleware {
	limit := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeJSON(w, http.StatusRequestEntityTooLarge, payloadTooLarge(limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func payloadTooLarge(limit int64) errors.ErrorResponse {
	return errors.PayloadTooLarge(limit).ToResponse()
}
