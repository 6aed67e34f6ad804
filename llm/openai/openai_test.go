package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/llm"
	"github.com/kbukum/flairscribe/openaiclient"
)

type chatRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestComplete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-2024-08-06",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "Devil Dog (A term for U.S. Marines)"},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 10, "total_tokens": 50},
		})
	}))
	defer srv.Close()

	p, err := New(openaiclient.Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, "gpt-4o")
	if err != nil {
		t.Fatal(err)
	}

	cfg := llm.Config{}
	cfg.ApplyDefaults()
	resp, err := p.Complete(context.Background(), cfg.Request("Devil Dog"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Content != "Devil Dog (A term for U.S. Marines)" || resp.Usage.TotalTokens != 50 {
		t.Errorf("unexpected response %+v", resp)
	}
	if got.Model != "gpt-4o" || got.MaxTokens != 16384 {
		t.Errorf("unexpected request model=%q max_tokens=%d", got.Model, got.MaxTokens)
	}
	if got.Temperature < 0.099 || got.Temperature > 0.101 {
		t.Errorf("unexpected temperature %v", got.Temperature)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[0].Content != "You are a helpful assistant." {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperrors.ErrorCode
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"requests"}}`, apperrors.ErrCodeRateLimited},
		{"bad request", http.StatusBadRequest, `{"error":{"message":"context too long","type":"invalid_request_error"}}`, apperrors.ErrCodeExternalService},
		{"no choices", http.StatusOK, `{"id":"x","choices":[]}`, apperrors.ErrCodeExternalService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p, err := New(openaiclient.Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, "")
			if err != nil {
				t.Fatal(err)
			}
			_, err = p.Complete(context.Background(), llm.UserPrompt("", "x"))
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}
