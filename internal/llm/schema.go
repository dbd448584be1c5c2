package llm

// QAResponseSchema describes one extractive QA answer.
func QAResponseSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
			"score":  map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"start":  map[string]any{"type": "integer", "minimum": 0},
			"end":    map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"answer"},
	}
}

// SummaryResponseSchema describes the summarization pipeline output: [{"summary_text": "..."}].
func SummaryResponseSchema() map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary_text": map[string]any{"type": "string"},
			},
			"required": []string{"summary_text"},
		},
	}
}

// ChatSummarySchema is what chat models must return for a summary.
func ChatSummarySchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"summary": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"summary"},
	}
}
