package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/flairscribe/bootstrap"
	"github.com/kbukum/flairscribe/config"
	"github.com/kbukum/flairscribe/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// noFiles hides config.yml and .env so only the environment is read.
type noFiles struct{}

func (noFiles) Exists(string) bool   { return false }
func (noFiles) LoadEnv(string) error { return nil }

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, ServiceName, cfg.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5150", "https://localhost:7054"}, cfg.Server.CORS.AllowedOrigins)
	assert.Equal(t, "whisper", cfg.Transcription.Provider)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 16384, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 20384, cfg.Vernacular.ChunkSize)
	assert.Equal(t, "uploads", cfg.Storage.BasePath)
	assert.True(t, cfg.Speechbox.Grouped())
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	err := cfg.Validate()
	require.Error(t, err, "openai backend without a key must not validate")
	assert.Contains(t, err.Error(), "openai")

	cfg.LLM.Provider = "ollama"
	assert.NoError(t, cfg.Validate())

	cfg.Transcription.Provider = "openai"
	assert.Error(t, cfg.Validate())
	cfg.OpenAI.APIKey = "sk-test"
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Provider = "ftp"
	cfg.Server.Port = -1
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage")
	assert.Contains(t, err.Error(), "server")
}

func TestReadyFields_MasksOpenAIKey(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.OpenAI.APIKey = "sk-live-0123456789"
	cfg.Flairscribe.APIUser = "scribe"

	fields := readyFields(cfg)
	assert.Equal(t, "sk-***", fields["openai_api_key"])
	assert.Equal(t, "whisper", fields["transcription"])
	assert.Equal(t, false, fields["auth"])
	for _, v := range fields {
		assert.NotContains(t, fmt.Sprint(v), "0123456789")
	}

	cfg.OpenAI.APIKey = ""
	assert.NotContains(t, readyFields(cfg), "openai_api_key")
}

func TestConfig_FromEnvironment(t *testing.T) {
	t.Setenv("FLAIRSCRIBE_API_USER", "scribe")
	t.Setenv("FLAIRSCRIBE_API_PASSWORD", "secret")
	t.Setenv("SPEECHBOX_GROUP_BY_SPEAKER", "false")
	t.Setenv("LLM_PROVIDER", "ollama")

	cfg := &Config{}
	require.NoError(t, config.LoadConfig(ServiceName, cfg, config.WithFileSystem(noFiles{})))
	cfg.ApplyDefaults()

	assert.Equal(t, "scribe", cfg.Flairscribe.APIUser)
	assert.Equal(t, "secret", cfg.Flairscribe.APIPassword)
	assert.False(t, cfg.Speechbox.Grouped())
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.NoError(t, cfg.Validate())
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// fakeBackends serves the whisper sidecar and Ollama APIs.
func fakeBackends(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/transcribe", func(w http.ResponseWriter, r *http.Request) {
		f, fh, err := r.FormFile("audio")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.Close()
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "transcript of " + fh.Filename})
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   "llama3",
			"message": map[string]string{"role": "assistant", "content": "The CO (Commanding Officer) spoke."},
			"done":    true,
		})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	backends := fakeBackends(t)

	cfg := &Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = freePort(t)
	cfg.Flairscribe = Credentials{APIUser: "scribe", APIPassword: "secret"}
	cfg.Transcription.Provider = "whisper"
	cfg.Transcription.Whisper.URL = backends.URL
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Ollama.BaseURL = backends.URL
	cfg.Storage.BasePath = t.TempDir()

	svc, err := New(cfg, bootstrap.WithLogger(logger.Nop()))
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(func() { _ = svc.Shutdown() })
	return svc
}

func upload(t *testing.T, path string, files map[string][2]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, f := range files {
		w, err := mw.CreateFormFile(field, f[0])
		require.NoError(t, err)
		_, _ = w.Write([]byte(f[1]))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(svc *Service, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	svc.Server.Handler().ServeHTTP(w, req)
	return w
}

func TestService_PlatformEndpointsAreOpen(t *testing.T) {
	svc := newTestService(t)

	w := serve(svc, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"transcription"`)

	w = serve(svc, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestService_AuthGuardsProcessing(t *testing.T) {
	svc := newTestService(t)
	body := `{"diarization": [{"segment": {"start": 0, "end": 1}, "label": "A"}], "asr": [{"text": "hi", "timestamp": [0, 1]}]}`

	for _, path := range []string{"/speechbox", "/transcribe", "/vernacular"} {
		w := serve(svc, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"msg": "Bad username or password"}`, w.Body.String(), path)
	}

	req := httptest.NewRequest(http.MethodPost, "/speechbox", strings.NewReader(body))
	req.SetBasicAuth("scribe", "wrong")
	assert.Equal(t, http.StatusUnauthorized, serve(svc, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/speechbox", strings.NewReader(body))
	req.SetBasicAuth("scribe", "secret")
	w := serve(svc, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[{"speaker": "A", "text": "hi", "timestamp": [0, 1]}]`, w.Body.String())
}

func TestService_TranscribeAndVernacular(t *testing.T) {
	svc := newTestService(t)

	req := upload(t, "/transcribe", map[string][2]string{"audiofiles": {"briefing.wav", "RIFF"}})
	req.SetBasicAuth("scribe", "secret")
	w := serve(svc, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"processed_files": [{"filename": "briefing", "transcription": "transcript of briefing.wav"}], "errors": []}`, w.Body.String())

	req = upload(t, "/vernacular", map[string][2]string{
		"transcription": {"call.txt", "The CO spoke."},
		"vernacular":    {"terms.csv", "term,definition\nCO,Commanding Officer\n"},
	})
	req.SetBasicAuth("scribe", "secret")
	w = serve(svc, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.EqualValues(t, 1, resp["terms_processed"])
	assert.EqualValues(t, 1, resp["chunks_processed"])
	assert.Equal(t, "The CO (Commanding Officer) spoke.", resp["processed_text"])
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Storage.Provider = "ftp"
	_, err := New(cfg, bootstrap.WithLogger(logger.Nop()))
	assert.Error(t, err)
}
