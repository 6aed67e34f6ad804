package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/flairscribe/errors"
)

func TestValidator_Collects(t *testing.T) {
	v := New()
	v.Required("name", "  ").
		Min("port", 0, 1).
		Range("temperature", 2.5, 0, 2).
		OneOf("provider", "azure", []string{"openai", "ollama"}).
		Custom(false, "chunk_size", "must be positive")

	if len(v.Errors()) != 5 {
		t.Fatalf("expected 5 errors, got %d: %v", len(v.Errors()), v.Errors())
	}
	appErr := v.Validate()
	if appErr == nil || appErr.Code != errors.ErrCodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", appErr)
	}
	if !strings.Contains(appErr.Message, "provider: must be one of: openai, ollama") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestValidator_NoErrors(t *testing.T) {
	v := New().Required("name", "x").OneOf("provider", "", []string{"a"})
	if v.Err() != nil {
		t.Errorf("expected nil error, got %v", v.Err())
	}
}

type inner struct {
	Start *float64 `json:"start" validate:"required"`
}

type outer struct {
	Items     []inner    `json:"items" validate:"min=1,dive"`
	Timestamp []*float64 `json:"timestamp" validate:"len=2,dive,required"`
	Mode      string     `validate:"omitempty,oneof=grouped chunk"`
}

func ptr(f float64) *float64 { return &f }

func TestValidate_StructTags(t *testing.T) {
	ok := outer{Items: []inner{{Start: ptr(0)}}, Timestamp: []*float64{ptr(0), ptr(1)}}
	if err := Validate(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := outer{
		Items:     []inner{{Start: ptr(0)}, {}},
		Timestamp: []*float64{ptr(0)},
		Mode:      "words",
	}
	err := Validate(bad)
	appErr, isApp := errors.AsAppError(err)
	if !isApp {
		t.Fatalf("expected AppError, got %v", err)
	}
	fields, _ := appErr.Details["fields"].([]FieldError)
	got := map[string]string{}
	for _, f := range fields {
		got[f.Field] = f.Message
	}
	if got["items[1].start"] != "is required" {
		t.Errorf("expected items[1].start required, got %v", got)
	}
	if got["timestamp"] != "must have exactly 2 elements" {
		t.Errorf("expected timestamp len error, got %v", got)
	}
	if got["mode"] != "must be one of: grouped chunk" {
		t.Errorf("expected snake_case mode error, got %v", got)
	}
}

func TestToSnakeCase(t *testing.T) {
	if toSnakeCase("GroupBySpeaker") != "group_by_speaker" {
		t.Errorf("got %q", toSnakeCase("GroupBySpeaker"))
	}
}
