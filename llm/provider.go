package llm

import (
	"context"

	"github.com/kbukum/flairscribe/provider"
)

// Provider is the interface completion backends implement.
type Provider interface {
	provider.Provider

	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// NewRegistry creates a provider registry for completion backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
