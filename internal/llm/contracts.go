package llm

import "context"

// Answer is one extractive QA result: a span of the context and the model's score.
type Answer struct {
	Text  string  `json:"answer"`
	Score float64 `json:"score"`
	Start int     `json:"start,omitempty"`
	End   int     `json:"end,omitempty"`
}

// QuestionAnswerer answers a natural-language question from a context passage.
// Implementations must be safe for concurrent use.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question, contextText string) (Answer, error)
}

// SummaryOptions bounds abstractive summary generation.
type SummaryOptions struct {
	MinLength int
	MaxLength int
	DoSample  bool
}

// DefaultSummaryOptions mirrors the bart-large-cnn settings: 30..130 tokens, greedy decoding.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{MinLength: 30, MaxLength: 130, DoSample: false}
}

// Summarizer produces an abstractive summary of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error)
}

// Model is a provider offering both capabilities.
type Model interface {
	QuestionAnswerer
	Summarizer
}
