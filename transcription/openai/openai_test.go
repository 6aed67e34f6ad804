package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/openaiclient"
	"github.com/kbukum/flairscribe/transcription"
)

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			http.NotFound(w, r)
			return
		}
		if r.FormValue("model") != "whisper-1" {
			http.Error(w, `{"error":{"message":"bad model"}}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"task":     "transcribe",
			"language": "english",
			"duration": 2.5,
			"text":     "Oorah",
			"segments": []map[string]any{{"id": 0, "start": 0.0, "end": 2.5, "text": "Oorah"}},
		})
	}))
	defer srv.Close()

	p, err := New(openaiclient.Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, Config{})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.Transcribe(context.Background(), transcription.Request{
		Filename: "drill.mp3",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("ID3")), nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Oorah" || resp.Duration != 2.5 || len(resp.Segments) != 1 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestTranscribe_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	}))
	defer srv.Close()

	p, err := New(openaiclient.Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, Config{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Transcribe(context.Background(), transcription.Request{
		Filename: "a.wav",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("x")), nil
		},
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeRateLimited) {
		t.Fatalf("expected RATE_LIMITED, got %v", err)
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := New(openaiclient.Config{}, Config{}); err == nil {
		t.Fatal("expected error")
	}
}
