package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/llm"
)

func TestComplete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/chat":
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			_ = json.NewEncoder(w).Encode(chatResponse{
				Model:           got.Model,
				Message:         chatMessage{Role: "assistant", Content: "MRE (Meal, Ready-to-Eat)"},
				Done:            true,
				PromptEvalCount: 12,
				EvalCount:       8,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := New(Config{BaseURL: srv.URL, Model: "llama3.1"})
	if !p.IsAvailable(context.Background()) {
		t.Fatal("expected available")
	}

	cfg := llm.Config{}
	cfg.ApplyDefaults()
	resp, err := p.Complete(context.Background(), cfg.Request("MRE"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "MRE (Meal, Ready-to-Eat)" || resp.Usage.TotalTokens != 20 {
		t.Errorf("unexpected response %+v", resp)
	}
	if got.Model != "llama3.1" {
		t.Errorf("configured model should win, got %q", got.Model)
	}
	if got.Stream {
		t.Error("expected non-streaming request")
	}
	if got.Options == nil || got.Options.NumPredict != 16384 || got.Options.Temperature == nil || *got.Options.Temperature != 0.1 {
		t.Errorf("unexpected options %+v", got.Options)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
}

func TestComplete_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).Complete(context.Background(), llm.UserPrompt("", "x"))
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeExternalService || appErr.Retryable {
		t.Fatalf("expected non-retryable EXTERNAL_SERVICE_ERROR, got %v", err)
	}

	srv.Close()
	_, err = New(Config{BaseURL: srv.URL}).Complete(context.Background(), llm.UserPrompt("", "x"))
	if !apperrors.HasCode(err, apperrors.ErrCodeServiceUnavailable) {
		t.Fatalf("expected SERVICE_UNAVAILABLE, got %v", err)
	}
}
