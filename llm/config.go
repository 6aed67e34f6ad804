package llm

import (
	"fmt"

	"github.com/kbukum/flairscribe/resilience"
)

// Config selects the completion backend and its request defaults.
type Config struct {
	// Provider names the backend: "openai" or "ollama".
	Provider     string                 `yaml:"provider" mapstructure:"provider"`
	Model        string                 `yaml:"model" mapstructure:"model"`
	SystemPrompt string                 `yaml:"system_prompt" mapstructure:"system_prompt"`
	Temperature  float64                `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens    int                    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Retry        resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// ApplyDefaults fills unset fields. A zero temperature is taken as unset.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = "openai"
	}
	if c.Model == "" {
		c.Model = "gpt-4o"
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = "You are a helpful assistant."
	}
	if c.Temperature == 0 {
		c.Temperature = 0.1
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 16384
	}
	c.Retry.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("llm.provider must be openai or ollama (got: %q)", c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2 (got: %v)", c.Temperature)
	}
	return nil
}

// Request builds a completion request for prompt with the configured
// model, system prompt and sampling settings.
func (c *Config) Request(prompt string) CompletionRequest {
	req := UserPrompt(c.SystemPrompt, prompt)
	req.Model = c.Model
	temp := c.Temperature
	req.Temperature = &temp
	req.MaxTokens = c.MaxTokens
	return req
}
