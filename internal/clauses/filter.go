// Package clauses isolates the lines of a lease that mention a keyword.
package clauses

import (
	"strings"

	"github.com/joseph-ayodele/lease-extractor/constants"
)

// Filter keeps lines containing a keyword, case-insensitively.
type Filter struct {
	keyword string
}

// NewFilter builds a Filter; an empty keyword falls back to "alteration".
func NewFilter(keyword string) *Filter {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		keyword = constants.DefaultClauseKeyword
	}
	return &Filter{keyword: strings.ToLower(keyword)}
}

// Keyword returns the lowercased keyword the filter matches.
func (f *Filter) Keyword() string { return f.keyword }

// Apply splits text on "\n" and returns, in order, every line whose lowercase form
// contains the keyword. Lines keep their original casing and punctuation. The result
// is never nil.
func (f *Filter) Apply(text string) []string {
	out := make([]string, 0)
	if text == "" {
		return out
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(strings.ToLower(line), f.keyword) {
			out = append(out, line)
		}
	}
	return out
}
