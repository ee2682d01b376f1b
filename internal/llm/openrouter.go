package llm

import (
	"errors"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// OpenRouter lists requests under this app name and site.
	openRouterTitle   = "DeutschPro"
	openRouterReferer = "https://github.com/abhisek/deutschpro"
)

// OpenRouterProvider routes Chat Completions through OpenRouter. Model ids
// carry the vendor prefix, e.g. "google/gemini-2.5-flash".
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenRouterModel
	}

	header := http.Header{}
	header.Set("HTTP-Referer", openRouterReferer)
	header.Set("X-Title", openRouterTitle)
	return &OpenRouterProvider{OpenAIProvider: newChatCompletions(cfg.APIKey, baseURL, model, header)}, nil
}
