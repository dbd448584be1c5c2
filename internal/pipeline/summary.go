package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/llm"
)

// SummaryStage summarizes a bounded prefix of the document.
type SummaryStage struct {
	Logger      *slog.Logger
	Summarizer  llm.Summarizer
	PrefixChars int
	Options     llm.SummaryOptions
}

func NewSummaryStage(logger *slog.Logger, s llm.Summarizer, prefixChars int, opts llm.SummaryOptions) *SummaryStage {
	if logger == nil {
		logger = slog.Default()
	}
	if prefixChars <= 0 {
		prefixChars = 3000
	}
	if opts.MaxLength <= 0 {
		opts = llm.DefaultSummaryOptions()
	}
	return &SummaryStage{Logger: logger, Summarizer: s, PrefixChars: prefixChars, Options: opts}
}

// Run summarizes the first PrefixChars characters of text. An empty prefix is a
// summarization error and never reaches the model.
func (s *SummaryStage) Run(ctx context.Context, text string) (string, error) {
	prefix := Prefix(text, s.PrefixChars)
	if strings.TrimSpace(prefix) == "" {
		return "", common.SummarizationError(common.ErrEmptyText)
	}
	s.Logger.Debug("pipeline.summary.request",
		"run_id", common.RunIDFromContext(ctx),
		"prefix_chars", s.PrefixChars,
		"input_bytes", len(prefix),
	)
	out, err := s.Summarizer.Summarize(ctx, prefix, s.Options)
	if err != nil {
		return "", common.SummarizationError(err)
	}
	return out, nil
}

// Prefix cuts text to at most n characters (runes), with no regard for word boundaries.
func Prefix(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(text) <= n {
		return text
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
