package bootstrap

import (
	"github.com/kbukum/flairscribe/config"
)

// Config constrains App's config type. Structs embedding
// config.ServiceConfig get GetServiceConfig by promotion and override
// ApplyDefaults and Validate for their own sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
