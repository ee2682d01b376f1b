package tutor

import (
	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/llm"
)

// DailyLessonSchema mirrors catalog.Lesson without the id, which the
// gateway assigns from the date.
var DailyLessonSchema = &llm.Schema{
	Name:        "daily-lesson",
	Description: "A short German lesson for Vietnamese learners with content sections and multiple-choice exercises",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Vietnamese lesson title",
			},
			"germanTitle": map[string]any{
				"type":        "string",
				"description": "German lesson title",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One Vietnamese sentence describing the lesson",
			},
			"category": map[string]any{
				"type": "string",
				"enum": enumOf(catalog.AllCategories()),
			},
			"level": map[string]any{
				"type": "string",
				"enum": enumOf(catalog.AllLevels()),
			},
			"content": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"section": map[string]any{"type": "string"},
						"text":    map[string]any{"type": "string"},
						"examples": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"de": map[string]any{"type": "string"},
									"vi": map[string]any{"type": "string"},
								},
								"required":             []any{"de", "vi"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"section", "text", "examples"},
					"additionalProperties": false,
				},
			},
			"exercises": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "string"},
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correctAnswer": map[string]any{"type": "string"},
						"explanation":   map[string]any{"type": "string"},
					},
					"required":             []any{"id", "question", "options", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "germanTitle", "description", "category", "level", "content", "exercises"},
		"additionalProperties": false,
	},
}

func enumOf[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
