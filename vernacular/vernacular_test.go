package vernacular

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/flairscribe/glossary"
	"github.com/kbukum/flairscribe/llm"
	"github.com/kbukum/flairscribe/logger"
)

// fakeLLM echoes the quoted chunk from the prompt, upper-cased, and fails
// for chunks containing a word in fail.
type fakeLLM struct {
	mu   sync.Mutex
	reqs []llm.CompletionRequest
	fail string
	err  error
}

func (f *fakeLLM) Name() string                       { return "fake" }
func (f *fakeLLM) IsAvailable(_ context.Context) bool { return true }

func (f *fakeLLM) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()

	prompt := req.Messages[0].Content
	start := strings.Index(prompt, "chunk is:\n\"") + len("chunk is:\n\"")
	end := strings.Index(prompt[start:], "\"\n") + start
	chunk := prompt[start:end]
	if f.fail != "" && strings.Contains(chunk, f.fail) {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: "  " + strings.ToUpper(chunk) + "\n"}, nil
}

func TestSplitIntoChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{"empty", "", 10, nil},
		{"whitespace only", " \n\t ", 10, nil},
		{"fits", "alpha bravo", 11, []string{"alpha bravo"}},
		{"splits on budget", "alpha bravo", 10, []string{"alpha", "bravo"}},
		{"normalises whitespace", "a\n\nb\tc", 100, []string{"a b c"}},
		{"oversize word alone", "tiny enormousword tiny", 5, []string{"tiny", "enormousword", "tiny"}},
		{"counts runes", "ééé ééé", 7, []string{"ééé ééé"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitIntoChunks(tt.text, tt.size))
		})
	}
}

func TestSplitIntoChunks_Properties(t *testing.T) {
	words := strings.Fields(strings.Repeat("Devil Dog reported to the FOB for PT before chow ", 200))
	text := strings.Join(words, " ")

	for _, size := range []int{1, 7, 50, 333, DefaultChunkSize} {
		chunks := SplitIntoChunks(text, size)
		var rejoined []string
		for _, c := range chunks {
			require.NotEmpty(t, c)
			if len(strings.Fields(c)) > 1 {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), size)
			}
			rejoined = append(rejoined, c)
		}
		assert.Equal(t, text, strings.Join(rejoined, " "), "size %d", size)
	}
	assert.Len(t, SplitIntoChunks(text, 0), 1, "zero size falls back to default")
}

func TestBuildPrompt(t *testing.T) {
	terms := glossary.New(glossary.Entry{Term: "MRE", Definition: "Meal, Ready-to-Eat"})

	p := BuildPrompt("", "grab an MRE", terms)
	assert.Contains(t, p, "The following is a military transcription")
	assert.Contains(t, p, "The transcription chunk is:\n\"grab an MRE\"")
	assert.Contains(t, p, "MRE: Meal, Ready-to-Eat")
	assert.Contains(t, p, `"Devil Dog (A term for U.S. Marines)"`)
	assert.True(t, strings.HasSuffix(p, "Respond with only the updated transcription chunk."))

	p = BuildPrompt("medical", "BP stable", terms)
	assert.Contains(t, p, "list of medical terms")
}

func TestExpander_Expand(t *testing.T) {
	fake := &fakeLLM{}
	exp := NewExpander(fake, llm.Config{}, Config{ChunkSize: 11, Concurrency: 3}, nil, logger.Nop())
	terms := glossary.New(glossary.Entry{Term: "FOB", Definition: "Forward Operating Base"})

	res, err := exp.Expand(context.Background(), "alpha bravo charlie delta echo", terms)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Chunks)
	assert.Equal(t, "ALPHA BRAVO CHARLIE DELTA ECHO", res.Text)
	assert.Empty(t, res.Errors)

	require.Len(t, fake.reqs, 3)
	req := fake.reqs[0]
	assert.Equal(t, "You are a helpful assistant.", req.SystemPrompt)
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, 16384, req.MaxTokens)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.1, *req.Temperature, 1e-9)
	assert.Contains(t, req.Messages[0].Content, "FOB: Forward Operating Base")
}

func TestExpander_FailedChunkKeepsOriginal(t *testing.T) {
	fake := &fakeLLM{fail: "charlie", err: errors.New("model overloaded")}
	exp := NewExpander(fake, llm.Config{}, Config{ChunkSize: 11}, nil, logger.Nop())

	res, err := exp.Expand(context.Background(), "alpha bravo charlie delta echo", glossary.New())
	require.NoError(t, err)

	assert.Equal(t, "ALPHA BRAVO charlie DELTA ECHO", res.Text)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.Equal(t, "Error processing chunk 2: model overloaded", res.Errors[0].Error())
}

func TestExpander_EmptyText(t *testing.T) {
	fake := &fakeLLM{}
	exp := NewExpander(fake, llm.Config{}, Config{}, nil, logger.Nop())

	res, err := exp.Expand(context.Background(), "   ", glossary.New())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Chunks)
	assert.Equal(t, "", res.Text)
	assert.Empty(t, fake.reqs)
}

func TestExpander_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exp := NewExpander(&fakeLLM{}, llm.Config{}, Config{}, nil, logger.Nop())
	_, err := exp.Expand(ctx, "alpha bravo", glossary.New())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "military", cfg.Domain)
	assert.NoError(t, cfg.Validate())

	cfg.ChunkSize = 10
	assert.Error(t, cfg.Validate())
}
