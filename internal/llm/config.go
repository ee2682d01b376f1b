package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single LLM request. Default: 45s.
	Timeout time.Duration
}

// Default model per backend. Model settings are passed to the backend
// verbatim.
const (
	DefaultGeminiModel     = "gemini-3-flash-preview"
	DefaultAnthropicModel  = "claude-haiku-4-5"
	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultOpenRouterModel = "google/gemini-2.5-flash"
)

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible servers
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. Retries are off:
// a failed chat send is retried by the learner, not behind their back.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic:  AnthropicConfig{Model: DefaultAnthropicModel},
		OpenAI:     OpenAIConfig{Model: DefaultOpenAIModel},
		Gemini:     GeminiConfig{Model: DefaultGeminiModel},
		OpenRouter: OpenRouterConfig{Model: DefaultOpenRouterModel},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// ConfigFromEnv builds a Config from DEUTSCHPRO_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("DEUTSCHPRO_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("DEUTSCHPRO_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("DEUTSCHPRO_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("DEUTSCHPRO_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("DEUTSCHPRO_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("DEUTSCHPRO_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("DEUTSCHPRO_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("DEUTSCHPRO_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("DEUTSCHPRO_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("DEUTSCHPRO_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	// Generic key for whichever provider is selected.
	if k := os.Getenv("DEUTSCHPRO_API_KEY"); k != "" && cfg.APIKey() == "" {
		cfg = cfg.WithAPIKey(k)
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for
// the first provider whose key is found. Returns (Config{}, false) if
// none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"} {
		if k := os.Getenv(name); k != "" {
			cfg.Provider = "gemini"
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// LoadConfig returns ConfigFromEnv, unless no provider was chosen and no
// key was set, in which case the standard vendor variables are probed.
// The result may carry no key at all; the tutor then reports the
// credential as missing.
func LoadConfig() Config {
	cfg := ConfigFromEnv()
	if cfg.APIKey() != "" || os.Getenv("DEUTSCHPRO_LLM_PROVIDER") != "" {
		return cfg
	}
	if discovered, ok := DiscoverConfig(); ok {
		discovered.Retry = cfg.Retry
		discovered.Timeout = cfg.Timeout
		return discovered
	}
	return cfg
}

// APIKey returns the key configured for the selected provider.
func (c Config) APIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey
	case "openai":
		return c.OpenAI.APIKey
	case "gemini":
		return c.Gemini.APIKey
	case "openrouter":
		return c.OpenRouter.APIKey
	}
	return ""
}

// WithAPIKey returns a copy of c with key set for the selected provider.
func (c Config) WithAPIKey(key string) Config {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "gemini":
		c.Gemini.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	}
	return c
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic", "openai", "gemini", "openrouter":
		if c.APIKey() == "" {
			return fmt.Errorf("an API key is required for the %s provider (set DEUTSCHPRO_API_KEY or connect one in the app)", c.Provider)
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
