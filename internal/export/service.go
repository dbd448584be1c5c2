package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/entity"
)

const (
	SheetExtractedData = "Extracted Data"
	SheetSummary       = "Summary"
	SheetAlterations   = "Alteration Details"

	// Excel refuses cells longer than this.
	maxCellChars = 32767
)

// Service renders extraction results as XLSX workbooks.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultXLSX returns a workbook (as bytes) with one sheet per part of the result.
// Null values are written as empty cells.
func (s *Service) ResultXLSX(ctx context.Context, res *entity.Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("export: nil result")
	}
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("export.xlsx.close_error", "error", err)
		}
	}()

	if err := s.writeExtractedData(f, res.ExtractedData); err != nil {
		return nil, err
	}
	if err := s.writeSummary(f, res); err != nil {
		return nil, err
	}
	if err := s.writeAlterations(f, res.AlterationDetails); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}
	activeIndex, _ := f.GetSheetIndex(SheetExtractedData)
	f.SetActiveSheet(activeIndex)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.WrapError(err, "xlsx write")
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", res.RunID,
		"alteration_rows", len(res.AlterationDetails),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteFile renders res and writes it to path.
func (s *Service) WriteFile(ctx context.Context, res *entity.Result, path string) error {
	b, err := s.ResultXLSX(ctx, res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return common.WrapError(err, "write "+path)
	}
	return nil
}

func (s *Service) writeExtractedData(f *excelize.File, rec *entity.Record) error {
	if _, err := f.NewSheet(SheetExtractedData); err != nil {
		return err
	}
	setRow(f, SheetExtractedData, 1, "Field", "Value")
	if rec != nil {
		for i, k := range rec.Keys() {
			setRow(f, SheetExtractedData, i+2, k, value(rec, k))
		}
	}
	_ = f.SetColWidth(SheetExtractedData, "A", "A", 24)
	_ = f.SetColWidth(SheetExtractedData, "B", "B", 60)
	return nil
}

func (s *Service) writeSummary(f *excelize.File, res *entity.Result) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	setRow(f, SheetSummary, 1, "Summary", truncate(res.SummaryText(), maxCellChars))
	setRow(f, SheetSummary, 2, "Source", res.SourcePath)
	setRow(f, SheetSummary, 3, "Pages", res.Pages)
	setRow(f, SheetSummary, 4, "Run ID", res.RunID)
	_ = f.SetColWidth(SheetSummary, "A", "A", 12)
	_ = f.SetColWidth(SheetSummary, "B", "B", 100)
	return nil
}

func (s *Service) writeAlterations(f *excelize.File, recs []*entity.Record) error {
	if _, err := f.NewSheet(SheetAlterations); err != nil {
		return err
	}

	// header is the union of keys; "Error" only shows up when some clause failed
	var headers []string
	seen := map[string]bool{}
	for _, r := range recs {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	head := make([]any, 0, len(headers)+1)
	head = append(head, "#")
	for _, h := range headers {
		head = append(head, h)
	}
	setRow(f, SheetAlterations, 1, head...)

	for i, r := range recs {
		row := make([]any, 0, len(headers)+1)
		row = append(row, i+1)
		for _, h := range headers {
			row = append(row, value(r, h))
		}
		setRow(f, SheetAlterations, i+2, row...)
	}
	_ = f.SetColWidth(SheetAlterations, "A", "A", 5)
	if n := len(headers); n > 0 {
		last, _ := excelize.ColumnNumberToName(n + 1)
		_ = f.SetColWidth(SheetAlterations, "B", last, 28)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, vals ...any) {
	for i, v := range vals {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func value(rec *entity.Record, key string) string {
	v, _ := rec.Get(key)
	return truncate(v, maxCellChars)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
