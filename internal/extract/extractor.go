package extract

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
)

// New picks the text backend named in cfg.
func New(cfg common.TextConfig, logger *slog.Logger) (TextExtractor, error) {
	switch cfg.Backend {
	case "", constants.BackendPDF:
		return NewPDFTextExtractor(logger), nil
	case constants.BackendPdftotext:
		return NewPdftotextExtractor(cfg.Pdftotext, logger), nil
	case constants.BackendOCR:
		return NewOCRExtractor(OCRConfig{
			Pdftoppm:    cfg.Pdftoppm,
			Tesseract:   cfg.Tesseract,
			Lang:        cfg.OCRLang,
			TessdataDir: cfg.TessdataDir,
			DPI:         cfg.OCRDPI,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unsupported text backend: %q", cfg.Backend)
	}
}
