package questiongen

import "github.com/rsoni/hireview/internal/llm"

// BatchSchema defines the JSON schema for a generated question batch.
var BatchSchema = &llm.Schema{
	Name:        "interview-questions",
	Description: "An ordered batch of technical interview questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Unique question id, e.g. q_1",
						},
						"number": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"description": "1-based position in the interview flow",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "Exact question text to show the candidate",
						},
						"skill_tested": map[string]any{
							"type":        "string",
							"description": "The specific skill this question assesses",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"expected_key_points": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Short phrases a strong answer should cover",
						},
						"why_this_question": map[string]any{
							"type":        "string",
							"description": "Why this question tests the skill",
						},
						"follow_up_prompt": map[string]any{
							"type":        "string",
							"description": "Optional follow-up if the initial answer is weak",
						},
					},
					"required": []any{
						"id", "number", "question", "skill_tested",
						"difficulty", "expected_key_points", "why_this_question",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
