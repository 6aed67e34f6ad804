package vernacular

import "fmt"

// Config tunes transcript expansion.
type Config struct {
	// ChunkSize is the character budget per LLM call.
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`
	// Concurrency bounds parallel chunk expansions per request.
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
	// Domain is the transcript kind named in the prompt.
	Domain string `yaml:"domain" mapstructure:"domain"`
	// GlossaryConcurrency bounds parallel glossary file loads.
	GlossaryConcurrency int `yaml:"glossary_concurrency" mapstructure:"glossary_concurrency"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.Domain == "" {
		c.Domain = DefaultDomain
	}
	if c.GlossaryConcurrency <= 0 {
		c.GlossaryConcurrency = 4
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ChunkSize < 100 {
		return fmt.Errorf("vernacular.chunk_size must be at least 100 (got: %d)", c.ChunkSize)
	}
	if c.Concurrency > 32 {
		return fmt.Errorf("vernacular.concurrency must be at most 32 (got: %d)", c.Concurrency)
	}
	return nil
}
