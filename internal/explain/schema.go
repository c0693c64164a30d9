package explain

import "github.com/abhisek/kubestronaut/internal/llm"

// ExplanationSchema defines the JSON schema for topic explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "topic-explanation",
	Description: "A short study note for one Kubernetes certification topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "What the topic is and why it matters (2-4 sentences)",
			},
			"key_points": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-5 facts worth remembering for the exam",
			},
			"exam_tip": map[string]any{
				"type":        "string",
				"description": "One practical tip, e.g. a kubectl command or a common trap",
			},
		},
		"required":             []any{"summary", "key_points", "exam_tip"},
		"additionalProperties": false,
	},
}
