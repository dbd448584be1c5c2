package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string // pages appended in order, no separator
	Pages    int
	Method   string // "pdf-text" | "pdftotext"
	Duration time.Duration
	Warnings []string
}
