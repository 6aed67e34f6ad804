package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/flairscribe/logger"
)

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg Config, res Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	r, err := newResource(res)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.MetricsInterval))),
		sdkmetric.WithResource(r),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.MetricsInterval.String(),
	))
	return mp, nil
}

// Metrics holds the service's instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	requests      metric.Int64Counter
	requestTime   metric.Float64Histogram
	records       metric.Int64Counter
	transcribed   metric.Int64Counter
	expansions    metric.Int64Counter
	llmLatency    metric.Float64Histogram
	glossaryTerms metric.Int64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err error
	if m.requests, err = meter.Int64Counter("flairscribe.requests",
		metric.WithDescription("Handled API requests")); err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}
	if m.requestTime, err = meter.Float64Histogram("flairscribe.request.duration",
		metric.WithDescription("API request duration"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating request duration histogram: %w", err)
	}
	if m.records, err = meter.Int64Counter("flairscribe.alignment.records",
		metric.WithDescription("Speaker-attributed records produced")); err != nil {
		return nil, fmt.Errorf("creating records counter: %w", err)
	}
	if m.transcribed, err = meter.Int64Counter("flairscribe.transcription.files",
		metric.WithDescription("Audio files transcribed, by outcome")); err != nil {
		return nil, fmt.Errorf("creating transcription counter: %w", err)
	}
	if m.expansions, err = meter.Int64Counter("flairscribe.vernacular.chunks",
		metric.WithDescription("Transcript chunks sent for expansion, by outcome")); err != nil {
		return nil, fmt.Errorf("creating expansion counter: %w", err)
	}
	if m.llmLatency, err = meter.Float64Histogram("flairscribe.llm.duration",
		metric.WithDescription("LLM completion latency"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating llm latency histogram: %w", err)
	}
	if m.glossaryTerms, err = meter.Int64Histogram("flairscribe.glossary.terms",
		metric.WithDescription("Terms loaded per vernacular request")); err != nil {
		return nil, fmt.Errorf("creating glossary histogram: %w", err)
	}
	return &m, nil
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("outcome", "error")
	}
	return attribute.String("outcome", "ok")
}

// RecordRequest records one finished API request.
func (m *Metrics) RecordRequest(ctx context.Context, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("route", route), attribute.Int("status", status))
	m.requests.Add(ctx, 1, attrs)
	m.requestTime.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("route", route)))
}

// RecordAlignment counts records produced by one alignment.
func (m *Metrics) RecordAlignment(ctx context.Context, records int, mode string) {
	if m == nil {
		return
	}
	m.records.Add(ctx, int64(records), metric.WithAttributes(attribute.String("mode", mode)))
}

// RecordTranscription counts one transcribed file.
func (m *Metrics) RecordTranscription(ctx context.Context, provider string, err error) {
	if m == nil {
		return
	}
	m.transcribed.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider), outcome(err)))
}

// RecordExpansion counts one expanded chunk and its LLM latency.
func (m *Metrics) RecordExpansion(ctx context.Context, provider string, d time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("provider", provider), outcome(err))
	m.expansions.Add(ctx, 1, attrs)
	m.llmLatency.Record(ctx, d.Seconds(), attrs)
}

// RecordGlossary records the merged glossary size of one request.
func (m *Metrics) RecordGlossary(ctx context.Context, terms int) {
	if m == nil {
		return
	}
	m.glossaryTerms.Record(ctx, int64(terms))
}
