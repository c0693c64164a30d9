package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single generation including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig also serves OpenAI-compatible gateways through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// DefaultConfig returns a Config with small, cheap models.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderAnthropic,
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// ConfigFromEnv overlays KUBESTRONAUT_* variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setenv := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setenv(&cfg.Provider, "KUBESTRONAUT_LLM_PROVIDER")
	setenv(&cfg.Anthropic.APIKey, "KUBESTRONAUT_ANTHROPIC_API_KEY")
	setenv(&cfg.Anthropic.Model, "KUBESTRONAUT_ANTHROPIC_MODEL")
	setenv(&cfg.OpenAI.APIKey, "KUBESTRONAUT_OPENAI_API_KEY")
	setenv(&cfg.OpenAI.Model, "KUBESTRONAUT_OPENAI_MODEL")
	setenv(&cfg.OpenAI.BaseURL, "KUBESTRONAUT_OPENAI_BASE_URL")
	setenv(&cfg.Gemini.APIKey, "KUBESTRONAUT_GEMINI_API_KEY")
	setenv(&cfg.Gemini.Model, "KUBESTRONAUT_GEMINI_MODEL")

	return cfg
}

// DiscoverConfig probes the standard API key variables in priority order
// (Gemini, OpenAI, Anthropic) and configures the first provider found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	return Config{}, false
}

// ResolveConfig returns the environment configuration when it is usable,
// otherwise a discovered one. ok is false when no provider can be built.
func ResolveConfig() (cfg Config, ok bool) {
	cfg = ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg, true
	}
	if os.Getenv("KUBESTRONAUT_LLM_PROVIDER") != "" {
		// An explicit choice without its key is not silently replaced.
		return cfg, false
	}
	return DiscoverConfig()
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("KUBESTRONAUT_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("KUBESTRONAUT_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("KUBESTRONAUT_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
