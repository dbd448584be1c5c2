package pipeline

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/joseph-ayodele/lease-extractor/internal/extract"
	"github.com/joseph-ayodele/lease-extractor/internal/llm"
)

type qaCall struct {
	Question string
	Context  string
}

type fakeQA struct {
	mu         sync.Mutex
	AnswerFunc func(ctx context.Context, question, contextText string) (llm.Answer, error)
	Calls      []qaCall
}

func (f *fakeQA) Answer(ctx context.Context, question, contextText string) (llm.Answer, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, qaCall{Question: question, Context: contextText})
	f.mu.Unlock()
	if f.AnswerFunc != nil {
		return f.AnswerFunc(ctx, question, contextText)
	}
	return llm.Answer{Text: "answer", Score: 0.5}, nil
}

func (f *fakeQA) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

type fakeSummarizer struct {
	SummarizeFunc func(ctx context.Context, text string, opts llm.SummaryOptions) (string, error)
	Inputs        []string
	Opts          []llm.SummaryOptions
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string, opts llm.SummaryOptions) (string, error) {
	f.Inputs = append(f.Inputs, text)
	f.Opts = append(f.Opts, opts)
	if f.SummarizeFunc != nil {
		return f.SummarizeFunc(ctx, text, opts)
	}
	return "summary", nil
}

type fakeExtractor struct {
	Text  string
	Pages int
	Err   error
	Calls int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (extract.TextExtractionResult, error) {
	f.Calls++
	if f.Err != nil {
		return extract.TextExtractionResult{}, f.Err
	}
	return extract.TextExtractionResult{Text: f.Text, Pages: f.Pages, Method: "fake"}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
