package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/lease-extractor/internal/common"
)

// OCRConfig drives the scanned-PDF backend.
type OCRConfig struct {
	Pdftoppm    string // if empty -> "pdftoppm"
	Tesseract   string // if empty -> "tesseract"
	Lang        string // default "eng"
	TessdataDir string
	DPI         int // default 300
}

// OCRExtractor rasterizes each page with pdftoppm and reads it back with tesseract.
// For scanned leases that carry no text layer.
type OCRExtractor struct {
	cfg    OCRConfig
	runner Runner
	logger *slog.Logger
}

func NewOCRExtractor(cfg OCRConfig, logger *slog.Logger) *OCRExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return NewOCRExtractorWithRunner(cfg, execRunner{logger: logger}, logger)
}

func NewOCRExtractorWithRunner(cfg OCRConfig, runner Runner, logger *slog.Logger) *OCRExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &OCRExtractor{cfg: cfg, runner: runner, logger: logger}
}

func (e *OCRExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	if _, err := os.Stat(path); err != nil {
		return TextExtractionResult{}, common.DocumentAccessError(path, err)
	}

	tmpDir, err := os.MkdirTemp("", "lease-ocr-*")
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("ocr temp dir: %w", err)
	}
	defer func(dir string) {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.Warn("failed to remove temp dir", "dir", dir, "error", err)
		}
	}(tmpDir)

	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	prefix := filepath.Join(tmpDir, "page")
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return TextExtractionResult{Warnings: stderrWarnings(errb)}, common.DocumentAccessError(path, err)
	}

	images, err := renderedPages(prefix)
	if err != nil {
		return TextExtractionResult{}, err
	}
	if len(images) == 0 {
		return TextExtractionResult{}, common.PageExtractionError(1, errors.New("pdftoppm rendered no pages"))
	}

	var b strings.Builder
	var warns []string
	for i, img := range images {
		txt, w, err := e.tesseract(ctx, img)
		warns = append(warns, w...)
		if err != nil {
			return TextExtractionResult{Warnings: warns}, common.PageExtractionError(i+1, err)
		}
		txt = NormalizeOCR(txt)
		if txt == "" {
			return TextExtractionResult{Warnings: warns}, common.PageExtractionError(i+1, errors.New("tesseract found no text"))
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(txt)
		e.logger.Debug("ocr page ok", "page", i+1, "chars", len(txt))
	}

	return TextExtractionResult{
		Text:     b.String(),
		Pages:    len(images),
		Method:   "pdf-ocr",
		Duration: time.Since(start),
		Warnings: warns,
	}, nil
}

func (e *OCRExtractor) tesseract(ctx context.Context, img string) (string, []string, error) {
	// tesseract <file> stdout -l <lang>
	args := []string{img, "stdout", "-l", e.cfg.Lang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", stderrWarnings(errb), fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil, nil
}

// renderedPages returns prefix-1.png, prefix-2.png, ... in page order. pdftoppm pads the
// page number to the width of the page count, so a plain sort is not enough past page 9.
func renderedPages(prefix string) ([]string, error) {
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("glob rendered pages: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		return pageNumber(prefix, matches[i]) < pageNumber(prefix, matches[j])
	})
	return matches, nil
}

func pageNumber(prefix, file string) int {
	s := strings.TrimSuffix(strings.TrimPrefix(file, prefix+"-"), ".png")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func stderrWarnings(errb []byte) []string {
	if s := strings.TrimSpace(string(errb)); s != "" {
		return []string{s}
	}
	return nil
}
