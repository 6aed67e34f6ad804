package transcription

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/resilience"
)

// fakeTranscriber returns the audio content upper-cased, or fails for files
// listed in fail.
type fakeTranscriber struct {
	fail     map[string]error
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	mu       sync.Mutex
	calls    map[string]int
}

func (f *fakeTranscriber) Name() string                       { return "fake" }
func (f *fakeTranscriber) IsAvailable(_ context.Context) bool { return true }

func (f *fakeTranscriber) Transcribe(_ context.Context, req Request) (*Response, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[req.Filename]++
	f.mu.Unlock()

	time.Sleep(f.delay)
	if err := f.fail[req.Filename]; err != nil {
		return nil, err
	}
	r, err := req.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	b, _ := io.ReadAll(r)
	return &Response{Text: strings.ToUpper(string(b))}, nil
}

func item(name, content string) Item {
	return Item{
		Name: strings.TrimSuffix(name, ".wav"),
		Request: Request{
			Filename: name,
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader(content)), nil
			},
		},
	}
}

func TestBatchRun(t *testing.T) {
	fake := &fakeTranscriber{
		fail:  map[string]error{"b.wav": errors.New("decoder crashed")},
		delay: 10 * time.Millisecond,
	}
	batch := NewBatch(fake, 2, nil, logger.Nop())

	results := batch.Run(context.Background(), []Item{
		item("a.wav", "alpha"),
		item("b.wav", "bravo"),
		item("c.wav", "charlie"),
		item("d.wav", "delta"),
	})

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	want := []struct{ name, text string }{{"a", "ALPHA"}, {"b", ""}, {"c", "CHARLIE"}, {"d", "DELTA"}}
	for i, w := range want {
		if results[i].Name != w.name || results[i].Text != w.text {
			t.Errorf("result %d: got %+v, want %+v", i, results[i], w)
		}
	}
	if results[1].Err == nil {
		t.Fatal("expected error for b")
	}
	if got := results[1].ErrorMessage(); got != "Error processing b.wav: decoder crashed" {
		t.Errorf("unexpected message %q", got)
	}
	if fake.peak.Load() > 2 {
		t.Errorf("concurrency limit exceeded: %d", fake.peak.Load())
	}
}

func TestBatchRun_Empty(t *testing.T) {
	results := NewBatch(&fakeTranscriber{}, 0, nil, logger.Nop()).Run(context.Background(), nil)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestWithRetry(t *testing.T) {
	cfg := resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond}

	t.Run("retries retryable failures", func(t *testing.T) {
		fake := &fakeTranscriber{fail: map[string]error{"a.wav": apperrors.ServiceUnavailable("whisper")}}
		p := WithRetry(fake, cfg, logger.Nop())
		if _, err := p.Transcribe(context.Background(), item("a.wav", "x").Request); err == nil {
			t.Fatal("expected error")
		}
		if fake.calls["a.wav"] != 3 {
			t.Errorf("expected 3 attempts, got %d", fake.calls["a.wav"])
		}
	})

	t.Run("stops on client errors", func(t *testing.T) {
		bad := apperrors.FromHTTPStatus("whisper", 400, "bad audio")
		fake := &fakeTranscriber{fail: map[string]error{"a.wav": bad}}
		p := WithRetry(fake, cfg, logger.Nop())
		if _, err := p.Transcribe(context.Background(), item("a.wav", "x").Request); !errors.Is(err, bad) {
			t.Fatalf("expected %v, got %v", bad, err)
		}
		if fake.calls["a.wav"] != 1 {
			t.Errorf("expected 1 attempt, got %d", fake.calls["a.wav"])
		}
	})

	t.Run("keeps name", func(t *testing.T) {
		p := WithRetry(&fakeTranscriber{}, cfg, logger.Nop())
		if p.Name() != "fake" {
			t.Errorf("unexpected name %q", p.Name())
		}
	})
}

func TestConfig(t *testing.T) {
	cfg := Config{Extensions: []string{"WAV", ".Mp3"}}
	cfg.ApplyDefaults()
	if cfg.Provider != "whisper" || cfg.Concurrency != 2 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Extensions[0] != ".wav" || cfg.Extensions[1] != ".mp3" {
		t.Errorf("extensions not normalised: %v", cfg.Extensions)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}

	cfg.Provider = "vosk"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}

	var empty Config
	empty.ApplyDefaults()
	if len(empty.Extensions) != 5 {
		t.Errorf("expected default extensions, got %v", empty.Extensions)
	}
}
