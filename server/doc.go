// Package server provides the HTTP server: a Gin engine for routing wrapped
// in a net/http middleware chain, with h2c so HTTP/2 works without TLS.
//
// Server-wide middleware (server/middleware) runs for every request:
// Recovery, RequestID, RequestLogger, CORS and BodySizeLimit. BasicAuth and
// Metrics are applied per route group.
//
// Built-in endpoints (server/endpoint) are /health, /info and /metrics.
package server
