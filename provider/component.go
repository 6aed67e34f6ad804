package provider

import (
	"context"

	"github.com/kbukum/flairscribe/component"
)

// HealthComponent exposes a Manager's default provider on /health. An
// unreachable backend reports degraded: the service still answers
// /speechbox without it.
type HealthComponent[T Provider] struct {
	name    string
	manager *Manager[T]
}

// NewHealthComponent wraps manager as a component named name.
func NewHealthComponent[T Provider](name string, manager *Manager[T]) *HealthComponent[T] {
	return &HealthComponent[T]{name: name, manager: manager}
}

func (h *HealthComponent[T]) Name() string                  { return h.name }
func (h *HealthComponent[T]) Start(_ context.Context) error { return nil }
func (h *HealthComponent[T]) Stop(_ context.Context) error  { return nil }

func (h *HealthComponent[T]) Health(ctx context.Context) component.Health {
	p, err := h.manager.Get(ctx)
	if err != nil {
		return component.Health{Name: h.name, Status: component.StatusUnhealthy, Message: err.Error()}
	}
	if !p.IsAvailable(ctx) {
		return component.Health{Name: h.name, Status: component.StatusDegraded, Message: p.Name() + " not reachable"}
	}
	return component.Health{Name: h.name, Status: component.StatusHealthy}
}

// Describe reports the default provider for the startup summary.
func (h *HealthComponent[T]) Describe() component.Description {
	return component.Description{Type: "provider", Details: h.manager.Default()}
}
