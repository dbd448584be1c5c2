package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/lease-extractor/internal/common"
)

// PDFTextExtractor reads the embedded text layer with github.com/ledongthuc/pdf.
type PDFTextExtractor struct {
	logger *slog.Logger
}

func NewPDFTextExtractor(logger *slog.Logger) *PDFTextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFTextExtractor{logger: logger}
}

// Extract opens path, walks pages 1..N and appends each page's text, one line per
// baseline. A missing or unparsable file is a document-access error; a page without
// a content object, a page that cannot be decoded and a document with no text at
// all are page-extraction errors.
func (e *PDFTextExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	if _, err := os.Stat(path); err != nil {
		return TextExtractionResult{}, common.DocumentAccessError(path, err)
	}

	f, r, err := openPDF(path)
	if err != nil {
		e.logger.Error("pdf open failed", "path", path, "error", err)
		return TextExtractionResult{}, common.DocumentAccessError(path, err)
	}
	defer func(f *os.File) {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("pdf close failed", "path", path, "error", cerr)
		}
	}(f)

	total := r.NumPage()
	e.logger.Debug("pdf opened", "path", path, "pages", total)

	var text []byte
	for pageNum := 1; pageNum <= total; pageNum++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, err
		}
		pt, err := pageText(r, pageNum)
		if err != nil {
			e.logger.Error("pdf page extraction failed", "path", path, "page", pageNum, "error", err)
			return TextExtractionResult{}, err
		}
		text = append(text, pt...)
	}
	if strings.TrimSpace(string(text)) == "" {
		e.logger.Error("pdf has no text layer", "path", path, "pages", total)
		return TextExtractionResult{}, common.PageExtractionError(1, errors.New("no extractable text on any page"))
	}

	return TextExtractionResult{
		Text:     string(text),
		Pages:    total,
		Method:   "pdf-text",
		Duration: time.Since(start),
	}, nil
}

// openPDF guards against panics inside the parser on malformed input.
func openPDF(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if f != nil {
				_ = f.Close()
			}
			f, r, err = nil, nil, fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	f, r, err = pdf.Open(path)
	if err != nil && f != nil {
		_ = f.Close()
		f = nil
	}
	return f, r, err
}

func pageText(r *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", common.PageExtractionError(pageNum, fmt.Errorf("decode page: %v", rec))
		}
	}()

	p := r.Page(pageNum)
	if p.V.IsNull() {
		return "", common.PageExtractionError(pageNum, errors.New("page has no content object"))
	}
	return joinLines(p.Content().Text), nil
}

// joinLines rebuilds lines from positioned glyphs in content-stream order. A change
// of baseline starts a new line; a horizontal gap wider than a fifth of the font
// size becomes a space. Every line, the last included, ends with "\n".
func joinLines(glyphs []pdf.Text) string {
	var b strings.Builder
	open := false
	var y, nextX, size float64
	for _, g := range glyphs {
		if g.S == "\n" {
			continue
		}
		if open && math.Abs(g.Y-y) > math.Max(size/2, 1) {
			b.WriteByte('\n')
			open = false
		}
		if open && g.X > nextX+size/5 && g.S != " " {
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		open = true
		y, nextX, size = g.Y, g.X+g.W, g.FontSize
	}
	if open {
		b.WriteByte('\n')
	}
	return b.String()
}
