// Package validation turns malformed input into INVALID_INPUT AppErrors.
//
// Request payloads are checked with go-playground/validator struct tags:
//
//	type Chunk struct {
//	    Text      *string    `json:"text" validate:"required"`
//	    Timestamp []*float64 `json:"timestamp" validate:"len=2,dive,required"`
//	}
//	err := validation.Validate(req)
//
// Configuration and form checks use the programmatic collector:
//
//	v := validation.New()
//	v.Required("server.host", cfg.Host).Min("server.port", cfg.Port, 1)
//	err := v.Err()
package validation
