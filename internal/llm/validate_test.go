package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func vocabSchema() *Schema {
	return &Schema{
		Name:        "vocab-card",
		Description: "A German word with its Vietnamese meaning",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"de":      map[string]any{"type": "string", "minLength": 1},
				"vi":      map[string]any{"type": "string"},
				"level":   map[string]any{"type": "string", "enum": []any{"A1", "A2", "B1", "B2"}},
				"article": map[string]any{"type": "string", "enum": []any{"der", "die", "das"}},
			},
			"required": []any{"de", "vi"},
		},
	}
}

func TestDecodeStructured(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantErr  bool
		wantPath string
	}{
		{name: "all fields", raw: `{"de":"Feierabend","vi":"Giờ tan làm","level":"A2","article":"der"}`},
		{name: "optional omitted", raw: `{"de":"Gemütlichkeit","vi":"Sự ấm cúng"}`},
		{name: "missing required", raw: `{"de":"Kummerspeck"}`, wantErr: true, wantPath: "/vi"},
		{name: "wrong type", raw: `{"de":"Fernweh","vi":42}`, wantErr: true, wantPath: "/vi"},
		{name: "invalid enum", raw: `{"de":"Brot","vi":"Bánh mì","article":"dem"}`, wantErr: true, wantPath: "/article"},
		{name: "empty german", raw: `{"de":"","vi":"trống"}`, wantErr: true, wantPath: "/de"},
		{name: "malformed JSON", raw: `{not json}`, wantErr: true},
		{name: "empty response", raw: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeStructured(vocabSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeStructured() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
			if string(invErr.Content) != tt.raw {
				t.Errorf("error should carry the raw content, got %q", invErr.Content)
			}
			if invErr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", invErr.Path, tt.wantPath)
			}
		})
	}
}

func TestDecodeStructured_NilSchema(t *testing.T) {
	raw := json.RawMessage(`Moin! Wie geht's?`)
	got, err := decodeStructured(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
	if string(got) != string(raw) {
		t.Fatalf("nil schema should pass content through, got %q", got)
	}
}

func TestDecodeStructured_StripsFence(t *testing.T) {
	for _, raw := range []string{
		"```json\n{\"de\":\"Brezel\",\"vi\":\"Bánh quy xoắn\"}\n```",
		"```\n{\"de\":\"Brezel\",\"vi\":\"Bánh quy xoắn\"}\n```\n",
	} {
		got, err := decodeStructured(vocabSchema(), json.RawMessage(raw))
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if string(got) != `{"de":"Brezel","vi":"Bánh quy xoắn"}` {
			t.Fatalf("unfenced body = %q", got)
		}
	}
}

func TestCheckReply(t *testing.T) {
	t.Run("blank plain reply", func(t *testing.T) {
		_, err := checkReply("Gemini", nil, json.RawMessage("  \n"), stopEnd)
		var invErr *ErrInvalidResponse
		if !errors.As(err, &invErr) {
			t.Fatalf("expected ErrInvalidResponse, got %v", err)
		}
	})

	t.Run("truncated structured reply", func(t *testing.T) {
		_, err := checkReply("Gemini", vocabSchema(), json.RawMessage(`{"de":"Stre`), stopMaxTokens)
		var trunc *ErrMaxTokensExceeded
		if !errors.As(err, &trunc) {
			t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
		}
	})

	t.Run("plain reply cut short is kept", func(t *testing.T) {
		got, err := checkReply("Gemini", nil, json.RawMessage("Guten Mor"), stopMaxTokens)
		if err != nil || string(got) != "Guten Mor" {
			t.Fatalf("got %q, %v", got, err)
		}
	})
}

func TestErrInvalidResponse_ErrorNamesPath(t *testing.T) {
	err := &ErrInvalidResponse{Path: "/exercises/0/options", Err: errors.New("minItems")}
	if !strings.Contains(err.Error(), "/exercises/0/options") {
		t.Fatalf("Error() = %q, want the failing path", err.Error())
	}
}

func TestDecodeStructured_NestedArrays(t *testing.T) {
	schema := &Schema{
		Name: "test-sections",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sections": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"examples": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
						"required": []any{"examples"},
					},
				},
			},
			"required": []any{"sections"},
		},
	}

	valid := json.RawMessage(`{"sections":[{"examples":["Hallo!","Tschüss!"]}]}`)
	if _, err := decodeStructured(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	tests := []struct {
		raw  string
		path string
	}{
		{`{"sections":[]}`, "/sections"},
		{`{"sections":[{"examples":["Hallo!",2]}]}`, "/sections/0/examples/1"},
		{`{"sections":[{}]}`, "/sections/0/examples"},
	}
	for _, tt := range tests {
		_, err := decodeStructured(schema, json.RawMessage(tt.raw))
		var invErr *ErrInvalidResponse
		if !errors.As(err, &invErr) {
			t.Errorf("expected ErrInvalidResponse for %s, got %v", tt.raw, err)
			continue
		}
		if invErr.Path != tt.path {
			t.Errorf("%s: Path = %q, want %q", tt.raw, invErr.Path, tt.path)
		}
	}
}
