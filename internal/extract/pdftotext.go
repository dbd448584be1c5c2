package extract

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joseph-ayodele/lease-extractor/internal/common"
)

// PdftotextExtractor shells out to poppler's pdftotext. Useful when the pure-Go
// reader cannot decode a document's fonts.
type PdftotextExtractor struct {
	bin    string
	runner Runner
	logger *slog.Logger
}

func NewPdftotextExtractor(bin string, logger *slog.Logger) *PdftotextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return NewPdftotextExtractorWithRunner(bin, execRunner{logger: logger}, logger)
}

func NewPdftotextExtractorWithRunner(bin string, runner Runner, logger *slog.Logger) *PdftotextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if bin == "" {
		bin = "pdftotext"
	}
	return &PdftotextExtractor{bin: bin, runner: runner, logger: logger}
}

// Extract runs `pdftotext -enc UTF-8 -eol unix <path> -`. pdftotext ends every page with
// a form feed; pages are re-joined without it so output matches the library backend.
func (e *PdftotextExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	if _, err := os.Stat(path); err != nil {
		return TextExtractionResult{}, common.DocumentAccessError(path, err)
	}

	out, errb, err := e.runner.Run(ctx, e.bin, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		var warns []string
		if len(errb) > 0 {
			warns = append(warns, strings.TrimSpace(string(errb)))
		}
		return TextExtractionResult{Warnings: warns}, common.DocumentAccessError(path, err)
	}

	pages := strings.Split(string(out), "\f")
	// trailing form feed leaves an empty tail
	if n := len(pages); n > 1 && pages[n-1] == "" {
		pages = pages[:n-1]
	}
	if len(pages) == 0 || (len(pages) == 1 && pages[0] == "") {
		return TextExtractionResult{}, common.PageExtractionError(1, errors.New("pdftotext produced no output"))
	}

	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
	}

	var warns []string
	if len(errb) > 0 {
		warns = append(warns, strings.TrimSpace(string(errb)))
		e.logger.Warn("pdftotext stderr", "path", path, "stderr", truncate(string(errb), 1<<10))
	}

	return TextExtractionResult{
		Text:     b.String(),
		Pages:    len(pages),
		Method:   "pdftotext",
		Duration: time.Since(start),
		Warnings: warns,
	}, nil
}
