// Package observability wires OpenTelemetry tracing and metrics.
//
//	tp, err := observability.InitTracer(ctx, cfg, observability.Resource{ServiceName: "flairscribe"})
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "vernacular.expand")
//	defer span.End()
//
// Instrumentation goes through the global otel providers, so it is a no-op
// until InitTracer or InitMeter runs.
package observability
