package entity

import (
	"bytes"
	"encoding/json"
	"time"
)

// Result is the aggregated output of one extraction run.
type Result struct {
	ExtractedData     *Record   `json:"Extracted Data"`
	Summary           *string   `json:"Summary"`
	AlterationDetails []*Record `json:"Alteration Details"`

	RunID      string        `json:"-"`
	SourcePath string        `json:"-"`
	Pages      int           `json:"-"`
	Clauses    []string      `json:"-"`
	Duration   time.Duration `json:"-"`
}

// SummaryText returns the summary, or "" when summarization failed.
func (r *Result) SummaryText() string {
	if r.Summary == nil {
		return ""
	}
	return *r.Summary
}

// MarshalIndented renders the result the way the CLI prints it: 4-space indent, HTML left unescaped.
func (r *Result) MarshalIndented() ([]byte, error) {
	out := *r
	if out.AlterationDetails == nil {
		out.AlterationDetails = []*Record{}
	}
	if out.ExtractedData == nil {
		out.ExtractedData = NewRecord(nil)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(&out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
