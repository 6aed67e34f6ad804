package whisper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/transcription"
)

func audioRequest(name, content string) transcription.Request {
	return transcription.Request{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		file, header, err := r.FormFile("audio")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(file)
		if header.Filename != "brief.wav" || string(data) != "RIFF" {
			http.Error(w, "unexpected upload", http.StatusBadRequest)
			return
		}
		if r.FormValue("model") != "tiny.en" || r.FormValue("language") != "en" {
			http.Error(w, "unexpected fields", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"text":     "Devil Dog reporting",
			"language": "en",
			"segments": []map[string]any{
				{"text": "Devil Dog", "start": 0.0, "end": 0.8},
				{"text": "reporting", "start": 0.8, "end": 1.5},
			},
		})
	}))
	defer srv.Close()

	p := New(Config{URL: srv.URL, Language: "en"})
	resp, err := p.Transcribe(context.Background(), audioRequest("brief.wav", "RIFF"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Devil Dog reporting" {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if len(resp.Segments) != 2 || resp.Duration != 1.5 {
		t.Errorf("unexpected segments %+v duration %v", resp.Segments, resp.Duration)
	}
}

func TestTranscribe_ErrorStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantCode  apperrors.ErrorCode
		retryable bool
	}{
		{http.StatusServiceUnavailable, apperrors.ErrCodeServiceUnavailable, true},
		{http.StatusInternalServerError, apperrors.ErrCodeExternalService, true},
		{http.StatusUnprocessableEntity, apperrors.ErrCodeExternalService, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			_, err := New(Config{URL: srv.URL}).Transcribe(context.Background(), audioRequest("a.wav", "x"))
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != tt.wantCode || appErr.Retryable != tt.retryable {
				t.Errorf("got code=%s retryable=%v", appErr.Code, appErr.Retryable)
			}
		})
	}
}

func TestTranscribe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(Config{URL: url}).Transcribe(context.Background(), audioRequest("a.wav", "x"))
	if !apperrors.HasCode(err, apperrors.ErrCodeServiceUnavailable) {
		t.Fatalf("expected SERVICE_UNAVAILABLE, got %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if !New(Config{URL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("expected available")
	}
	if New(Config{URL: "http://127.0.0.1:1"}).IsAvailable(context.Background()) {
		t.Error("expected unavailable")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.URL != "http://localhost:8387" || cfg.Model != "tiny.en" || cfg.Timeout == 0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
