package llm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NormalizeQAResponse coerces the shapes QA endpoints return into a single answer object.
// - a list of candidates (top_k > 1, or some hosted endpoints) -> highest score
// - score as a string -> number
// - explicit null answer -> ""
// A reply without an answer key is left alone so schema validation rejects it.
func NormalizeQAResponse(raw []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("normalize qa: decode: %w", err)
	}

	var m map[string]any
	switch t := v.(type) {
	case map[string]any:
		m = t
	case []any:
		cands := make([]map[string]any, 0, len(t))
		for _, c := range t {
			if cm, ok := c.(map[string]any); ok {
				cands = append(cands, cm)
			}
		}
		if len(cands) == 0 {
			return nil, fmt.Errorf("normalize qa: no answer candidates")
		}
		sort.SliceStable(cands, func(i, j int) bool {
			return scoreOf(cands[i]) > scoreOf(cands[j])
		})
		m = cands[0]
	default:
		return nil, fmt.Errorf("normalize qa: unexpected %T", v)
	}

	if a, ok := m["answer"]; ok && a == nil {
		m["answer"] = ""
	}
	if s, ok := m["score"].(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			m["score"] = f
		} else {
			delete(m, "score")
		}
	}
	return json.Marshal(m)
}

// NormalizeSummaryResponse accepts a bare object or the generated_text key some
// text-generation backends use and returns [{"summary_text": ...}].
func NormalizeSummaryResponse(raw []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("normalize summary: decode: %w", err)
	}

	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		items = []any{t}
	default:
		return nil, fmt.Errorf("normalize summary: unexpected %T", v)
	}

	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if _, has := m["summary_text"]; !has {
			if g, ok := m["generated_text"]; ok {
				m["summary_text"] = g
				delete(m, "generated_text")
			}
		}
	}
	return json.Marshal(items)
}

func scoreOf(m map[string]any) float64 {
	switch s := m["score"].(type) {
	case float64:
		return s
	case string:
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}
	return 0
}
