// Package app wires the flairscribe service: configuration, providers,
// upload staging, telemetry and the HTTP routes.
package app

import (
	"context"
	"fmt"

	"github.com/kbukum/flairscribe/api"
	"github.com/kbukum/flairscribe/bootstrap"
	"github.com/kbukum/flairscribe/llm"
	"github.com/kbukum/flairscribe/llm/ollama"
	llmopenai "github.com/kbukum/flairscribe/llm/openai"
	"github.com/kbukum/flairscribe/logger"
	"github.com/kbukum/flairscribe/observability"
	"github.com/kbukum/flairscribe/provider"
	"github.com/kbukum/flairscribe/server"
	"github.com/kbukum/flairscribe/server/middleware"
	"github.com/kbukum/flairscribe/storage"
	"github.com/kbukum/flairscribe/transcription"
	transcriptionopenai "github.com/kbukum/flairscribe/transcription/openai"
	"github.com/kbukum/flairscribe/transcription/whisper"
	"github.com/kbukum/flairscribe/util"
	"github.com/kbukum/flairscribe/version"

	// staging backends register themselves
	_ "github.com/kbukum/flairscribe/storage/local"
	_ "github.com/kbukum/flairscribe/storage/s3"
)

// Service is a wired, not yet started, flairscribe instance.
type Service struct {
	*bootstrap.App[*Config]

	Server       *server.Server
	Storage      *storage.Component
	Transcribers *provider.Manager[transcription.Provider]
	Completers   *provider.Manager[llm.Provider]

	metrics *observability.Metrics
}

// New validates cfg and wires the service. Providers are created here so a
// misconfigured backend fails before anything listens.
func New(cfg *Config, opts ...bootstrap.Option) (*Service, error) {
	a, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}
	s := &Service{App: a}
	log := a.Logger

	s.Storage = storage.NewComponent(cfg.Storage, log)
	if err := a.RegisterComponent(s.Storage); err != nil {
		return nil, err
	}

	s.Transcribers, err = newTranscribers(cfg, log)
	if err != nil {
		return nil, err
	}
	s.Completers, err = newCompleters(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := a.RegisterComponent(provider.NewHealthComponent("transcription", s.Transcribers)); err != nil {
		return nil, err
	}
	if err := a.RegisterComponent(provider.NewHealthComponent("llm", s.Completers)); err != nil {
		return nil, err
	}

	s.Server = server.New(cfg.Server, log)
	if err := a.RegisterComponent(server.NewComponent(s.Server)); err != nil {
		return nil, err
	}

	a.OnStart(s.initTelemetry)
	a.OnConfigure(func(_ context.Context, a *bootstrap.App[*Config]) error {
		s.registerRoutes(a.Cfg)
		return nil
	})
	a.OnReady(func(context.Context) error {
		s.Logger.WithFields(readyFields(a.Cfg)).Info("flairscribe ready")
		return nil
	})
	return s, nil
}

// readyFields summarises the effective backends for the startup log. The
// OpenAI key is masked down to its prefix.
func readyFields(cfg *Config) map[string]interface{} {
	fields := map[string]interface{}{
		"transcription": cfg.Transcription.Provider,
		"llm":           cfg.LLM.Provider,
		"llm_model":     cfg.LLM.Model,
		"storage":       cfg.Storage.Provider,
		"grouped":       cfg.Speechbox.Grouped(),
		"auth":          cfg.Flairscribe.APIUser != "" && cfg.Flairscribe.APIPassword != "",
		"tls":           cfg.Server.TLS.Enabled(),
	}
	if cfg.OpenAI.APIKey != "" {
		fields["openai_api_key"] = util.MaskSecret(cfg.OpenAI.APIKey, 3)
	}
	return fields
}

func newTranscribers(cfg *Config, log *logger.Logger) (*provider.Manager[transcription.Provider], error) {
	tc := cfg.Transcription
	reg := transcription.NewRegistry()
	reg.RegisterFactory(whisper.ProviderName, func() (transcription.Provider, error) {
		return transcription.WithRetry(whisper.New(tc.Whisper), tc.Retry, log), nil
	})
	reg.RegisterFactory(transcriptionopenai.ProviderName, func() (transcription.Provider, error) {
		p, err := transcriptionopenai.New(cfg.OpenAI, tc.OpenAI)
		if err != nil {
			return nil, err
		}
		return transcription.WithRetry(p, tc.Retry, log), nil
	})
	return initManager(reg, tc.Provider, log)
}

func newCompleters(cfg *Config, log *logger.Logger) (*provider.Manager[llm.Provider], error) {
	lc := cfg.LLM
	reg := llm.NewRegistry()
	reg.RegisterFactory(llmopenai.ProviderName, func() (llm.Provider, error) {
		p, err := llmopenai.New(cfg.OpenAI, lc.Model)
		if err != nil {
			return nil, err
		}
		return llm.WithRetry(p, lc.Retry, log), nil
	})
	reg.RegisterFactory(ollama.ProviderName, func() (llm.Provider, error) {
		return llm.WithRetry(ollama.New(lc.Ollama), lc.Retry, log), nil
	})
	return initManager(reg, lc.Provider, log)
}

// initManager creates the configured provider and makes it the default.
func initManager[T provider.Provider](reg *provider.Registry[T], name string, log *logger.Logger) (*provider.Manager[T], error) {
	m := provider.NewManager(reg, nil, log)
	if err := m.Initialize(name); err != nil {
		return nil, fmt.Errorf("initialize provider %q: %w", name, err)
	}
	if err := m.SetDefault(name); err != nil {
		return nil, err
	}
	return m, nil
}

// initTelemetry installs the OTLP exporters that are switched on and
// registers their shutdown.
func (s *Service) initTelemetry(ctx context.Context) error {
	cfg := s.Cfg
	res := observability.Resource{
		ServiceName:    cfg.Name,
		ServiceVersion: version.Get().Version,
		Environment:    cfg.Environment,
	}

	if cfg.Observability.Tracing {
		tp, err := observability.InitTracer(ctx, cfg.Observability, res)
		if err != nil {
			return err
		}
		s.OnStop(tp.Shutdown)
	}
	if cfg.Observability.Metrics {
		mp, err := observability.InitMeter(ctx, cfg.Observability, res)
		if err != nil {
			return err
		}
		s.OnStop(mp.Shutdown)
		m, err := observability.NewMetrics(mp.Meter(ServiceName))
		if err != nil {
			return err
		}
		s.metrics = m
	}
	return nil
}

// registerRoutes mounts the platform endpoints openly and the processing
// endpoints behind Basic auth.
func (s *Service) registerRoutes(cfg *Config) {
	engine := s.Server.GinEngine()
	engine.Use(middleware.Metrics(s.metrics))

	s.Server.RegisterDefaultEndpoints(cfg.Name, s.Components.HealthAll)

	h := api.New(api.Options{
		GroupBySpeaker: cfg.Speechbox.Grouped(),
		Storage:        s.Storage.Storage(),
		StagingPrefix:  cfg.Storage.Prefix,
		Transcribers:   s.Transcribers,
		Transcription:  cfg.Transcription.Config,
		Completers:     s.Completers,
		LLM:            cfg.LLM.Config,
		Vernacular:     cfg.Vernacular,
		Metrics:        s.metrics,
		Logger:         s.Logger,
	})

	auth := middleware.BasicAuth(middleware.BasicAuthConfig{
		Username: cfg.Flairscribe.APIUser,
		Password: cfg.Flairscribe.APIPassword,
	}, s.Logger)
	if cfg.Flairscribe.APIUser == "" || cfg.Flairscribe.APIPassword == "" {
		s.Logger.Warn("API credentials not configured, processing endpoints will refuse every request")
	}
	h.Register(engine.Group("", middleware.GinWrap(auth)))
}
