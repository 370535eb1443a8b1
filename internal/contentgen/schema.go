package contentgen

import "github.com/WatsonMLDev/codele-backend/internal/llm"

// ThemeSchema defines the JSON schema for theme-pick responses.
var ThemeSchema = &llm.Schema{
	Name:        "weekly-theme",
	Description: "A single fresh theme name for a batch of daily coding problems",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"theme": map[string]any{
				"type":        "string",
				"description": "The chosen theme name, short and title-cased, e.g. 'Graph Traversal' or 'Halloween Horrors'",
			},
		},
		"required":             []any{"theme"},
		"additionalProperties": false,
	},
}

// BatchSchema defines the JSON schema for problem-batch responses.
// Counts are deliberately not encoded here; the engine checks the exact
// problem and test-case counts itself so a short batch is rejected with
// a precise error instead of a generic schema failure.
var BatchSchema = &llm.Schema{
	Name:        "problem-batch",
	Description: "A batch of daily JavaScript coding problems sharing one theme",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Short unique title, distinct from every title in the existing-titles list",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Problem statement in Markdown: task, input/output contract, one worked example",
						},
						"starter_code": map[string]any{
							"type":        "string",
							"description": "JavaScript function skeleton the player completes, e.g. 'function solve(input) {\\n  \\n}'",
						},
						"test_cases": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"type": map[string]any{
										"type":        "string",
										"enum":        []any{"basic", "edge", "logic", "conciseness"},
										"description": "What the case exercises",
									},
									"input": map[string]any{
										"type":        "string",
										"description": "The argument passed to the function, as a JavaScript literal",
									},
									"expected": map[string]any{
										"type":        "string",
										"description": "The expected return value, as a JavaScript literal",
									},
									"hint": map[string]any{
										"type":        "string",
										"description": "One sentence nudging the player toward what this case checks",
									},
								},
								"required":             []any{"type", "input", "expected", "hint"},
								"additionalProperties": false,
							},
							"description": "Exactly 6 test cases covering basic, edge, logic, and conciseness angles",
						},
						"topics": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Lowercase topic tags, e.g. 'arrays', 'recursion'",
						},
					},
					"required":             []any{"title", "description", "starter_code", "test_cases", "topics"},
					"additionalProperties": false,
				},
				"description": "Exactly the requested number of problems, ordered easiest first",
			},
		},
		"required":             []any{"problems"},
		"additionalProperties": false,
	},
}
