package provider

import "context"

// Provider is the base interface for swappable backends (transcription
// engines, completion models).
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance. Factories close over their typed
// configuration section.
type Factory[T Provider] func() (T, error)
