// Package errors defines the service's structured error type. Every error
// carries a machine-readable code, an HTTP status and a retryable flag so
// handlers can render it directly and collaborators can decide on retries.
package errors
