package storage

import (
	"context"
	"fmt"

	"github.com/kbukum/flairscribe/component"
	"github.com/kbukum/flairscribe/logger"
)

// Component owns the staging backend for the application lifecycle.
type Component struct {
	cfg     Config
	log     *logger.Logger
	storage Storage
}

var _ component.Component = (*Component)(nil)

// NewComponent returns a component that builds its backend on Start.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("storage")}
}

// Storage returns the backend, or nil before Start.
func (c *Component) Storage() Storage { return c.storage }

// Config returns the effective configuration.
func (c *Component) Config() Config { return c.cfg }

func (c *Component) Name() string { return "storage" }

func (c *Component) Start(_ context.Context) error {
	s, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.storage = s
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	c.storage = nil
	return nil
}

func (c *Component) Health(ctx context.Context) component.Health {
	if c.storage == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "storage not initialized"}
	}
	if p, ok := c.storage.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: fmt.Sprintf("ping failed: %v", err)}
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe reports the backend for the startup summary.
func (c *Component) Describe() component.Description {
	details := "provider=" + c.cfg.Provider
	switch c.cfg.Provider {
	case ProviderS3:
		details += " bucket=" + c.cfg.Bucket
	case ProviderLocal:
		details += " path=" + c.cfg.BasePath
	}
	return component.Description{Type: "storage", Details: details}
}
