package app

import (
	"errors"
	"fmt"

	"github.com/kbukum/flairscribe/config"
	"github.com/kbukum/flairscribe/llm"
	"github.com/kbukum/flairscribe/llm/ollama"
	"github.com/kbukum/flairscribe/observability"
	"github.com/kbukum/flairscribe/openaiclient"
	"github.com/kbukum/flairscribe/server"
	"github.com/kbukum/flairscribe/storage"
	"github.com/kbukum/flairscribe/transcription"
	transcriptionopenai "github.com/kbukum/flairscribe/transcription/openai"
	"github.com/kbukum/flairscribe/transcription/whisper"
	"github.com/kbukum/flairscribe/vernacular"
)

// ServiceName locates cmd/<name>/config.yml and tags logs and telemetry.
const ServiceName = "flairscribe"

// Config is the full service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Flairscribe   Credentials          `yaml:"flairscribe" mapstructure:"flairscribe"`
	OpenAI        openaiclient.Config  `yaml:"openai" mapstructure:"openai"`
	Transcription TranscriptionConfig  `yaml:"transcription" mapstructure:"transcription"`
	LLM           LLMConfig            `yaml:"llm" mapstructure:"llm"`
	Vernacular    vernacular.Config    `yaml:"vernacular" mapstructure:"vernacular"`
	Speechbox     SpeechboxConfig      `yaml:"speechbox" mapstructure:"speechbox"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// Credentials is the Basic auth pair guarding the processing endpoints.
// Usually set through FLAIRSCRIBE_API_USER and FLAIRSCRIBE_API_PASSWORD.
type Credentials struct {
	APIUser     string `yaml:"api_user" mapstructure:"api_user"`
	APIPassword string `yaml:"api_password" mapstructure:"api_password"`
}

// TranscriptionConfig adds backend sections to transcription.Config.
type TranscriptionConfig struct {
	transcription.Config `yaml:",inline" mapstructure:",squash"`

	Whisper whisper.Config             `yaml:"whisper" mapstructure:"whisper"`
	OpenAI  transcriptionopenai.Config `yaml:"openai" mapstructure:"openai"`
}

// LLMConfig adds backend sections to llm.Config.
type LLMConfig struct {
	llm.Config `yaml:",inline" mapstructure:",squash"`

	Ollama ollama.Config `yaml:"ollama" mapstructure:"ollama"`
}

// SpeechboxConfig holds alignment defaults.
type SpeechboxConfig struct {
	// GroupBySpeaker is used when a request does not say. Defaults to true.
	GroupBySpeaker *bool `yaml:"group_by_speaker" mapstructure:"group_by_speaker"`
}

// Grouped reports the effective default mode.
func (c SpeechboxConfig) Grouped() bool {
	return c.GroupBySpeaker == nil || *c.GroupBySpeaker
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.OpenAI.ApplyDefaults()
	c.Transcription.Config.ApplyDefaults()
	c.Transcription.Whisper.ApplyDefaults()
	if c.Transcription.Whisper.Language == "" {
		c.Transcription.Whisper.Language = c.Transcription.Language
	}
	if c.Transcription.OpenAI.Language == "" {
		c.Transcription.OpenAI.Language = c.Transcription.Language
	}
	c.LLM.Config.ApplyDefaults()
	c.LLM.Ollama.ApplyDefaults()
	c.Vernacular.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section and the provider choices against each
// other. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	add := func(section string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", section, err))
		}
	}
	add("service", c.ServiceConfig.Validate())
	add("server", c.Server.Validate())
	add("transcription", c.Transcription.Config.Validate())
	add("llm", c.LLM.Config.Validate())
	add("vernacular", c.Vernacular.Validate())
	add("storage", c.Storage.Validate())
	add("observability", c.Observability.Validate())

	if c.Transcription.Provider == transcriptionopenai.ProviderName || c.LLM.Provider == "openai" {
		add("openai", c.OpenAI.Validate())
	}
	return errors.Join(errs...)
}
