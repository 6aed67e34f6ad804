package transcription

import (
	"fmt"
	"strings"

	"github.com/kbukum/flairscribe/resilience"
)

// DefaultExtensions are the audio types accepted for transcription.
var DefaultExtensions = []string{".wav", ".mp3", ".m4a", ".flac", ".ogg"}

// Config selects the backend and bounds batch work.
type Config struct {
	// Provider names the backend: "whisper" or "openai".
	Provider string `yaml:"provider" mapstructure:"provider"`
	// Concurrency is how many files of one request are transcribed at once.
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
	// Extensions lists accepted audio extensions, with the leading dot.
	Extensions []string `yaml:"extensions" mapstructure:"extensions"`
	// Language is passed to the backend when set.
	Language string                 `yaml:"language" mapstructure:"language"`
	Retry    resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = "whisper"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 2
	}
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), DefaultExtensions...)
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	c.Retry.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Provider {
	case "whisper", "openai":
	default:
		return fmt.Errorf("transcription.provider must be whisper or openai (got: %q)", c.Provider)
	}
	if c.Concurrency > 16 {
		return fmt.Errorf("transcription.concurrency must be at most 16 (got: %d)", c.Concurrency)
	}
	return nil
}
