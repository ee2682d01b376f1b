package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("default model", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != DefaultOpenRouterModel {
			t.Errorf("model = %q, want %q", p.ModelID(), DefaultOpenRouterModel)
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: DefaultOpenRouterModel}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("vendor-prefixed model is kept", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-haiku-4.5"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "anthropic/claude-haiku-4.5" {
			t.Errorf("model = %q", p.ModelID())
		}
	})

	t.Run("pricing falls back to bare model id", func(t *testing.T) {
		if LookupCost(DefaultOpenRouterModel) == nil {
			t.Fatalf("expected pricing for %s", DefaultOpenRouterModel)
		}
		if LookupCost("acme/unknown") != nil {
			t.Fatal("expected no pricing for unknown model")
		}
	})
}

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	var header http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "gen-test",
			"object":  "chat.completion",
			"model":   DefaultOpenRouterModel,
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": "Tschüss!"}, "finish_reason": "stop"}},
			"usage":   map[string]any{"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Tạm biệt"}},
		MaxTokens: 32,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Tschüss!" {
		t.Fatalf("unexpected text %q", resp.Text())
	}
	if header.Get("X-Title") != openRouterTitle || header.Get("HTTP-Referer") != openRouterReferer {
		t.Fatalf("attribution headers missing: %v", header)
	}
	if header.Get("Authorization") != "Bearer sk-or-test" {
		t.Fatalf("authorization header = %q", header.Get("Authorization"))
	}
}
