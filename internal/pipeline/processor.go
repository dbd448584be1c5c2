// Package pipeline runs one lease document through text extraction, clause
// filtering, clause QA, summarization and metadata QA.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/clauses"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/entity"
	"github.com/joseph-ayodele/lease-extractor/internal/extract"
	"github.com/joseph-ayodele/lease-extractor/internal/ingest"
)

// Processor sequences the stages and assembles the Result.
type Processor struct {
	Logger        *slog.Logger
	Extractor     extract.TextExtractor
	Filter        *clauses.Filter
	Alterations   *AlterationStage
	Summary       *SummaryStage
	Metadata      *MetadataStage
	StrictSummary bool // summarization failure aborts the run
}

func NewProcessor(
	logger *slog.Logger,
	extractor extract.TextExtractor,
	filter *clauses.Filter,
	alterations *AlterationStage,
	summary *SummaryStage,
	metadata *MetadataStage,
	strictSummary bool,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if filter == nil {
		filter = clauses.NewFilter(constants.DefaultClauseKeyword)
	}
	return &Processor{
		Logger:        logger,
		Extractor:     extractor,
		Filter:        filter,
		Alterations:   alterations,
		Summary:       summary,
		Metadata:      metadata,
		StrictSummary: strictSummary,
	}
}

// ProcessFile runs every stage in order against the PDF at path.
// Document-access and page-extraction errors are fatal; model failures are recorded
// in the Result unless StrictSummary is set and summarization fails.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*entity.Result, error) {
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	start := time.Now()

	doc, err := ingest.Inspect(path, p.Logger)
	if err != nil {
		p.Logger.Error("processor.input.failed", "run_id", runID, "path", path, "error", err)
		return nil, err
	}
	p.Logger.Debug("processor.input.ok",
		"run_id", runID,
		"path", doc.SourcePath,
		"format", doc.Format,
		"size_bytes", doc.SizeBytes,
		"sha256", doc.HashHex,
	)

	// 1) text
	p.progress(runID, constants.StepExtractText, "extracting text from pdf")
	tr, err := p.Extractor.Extract(ctx, doc.SourcePath)
	if err != nil {
		p.Logger.Error("processor.extract.failed", "run_id", runID, "path", doc.SourcePath, "error", err)
		return nil, err
	}
	for _, w := range tr.Warnings {
		p.Logger.Warn("processor.extract.warning", "run_id", runID, "warning", w)
	}
	p.progress(runID, constants.StepExtractText, "text extracted",
		"pages", tr.Pages, "chars", len([]rune(tr.Text)), "method", tr.Method)

	// 2) clauses
	p.progress(runID, constants.StepFilter, "filtering clauses", "keyword", p.Filter.Keyword())
	found := p.Filter.Apply(tr.Text)
	p.progress(runID, constants.StepFilter, "clauses filtered", "clauses", len(found))

	// 3) clause QA
	p.progress(runID, constants.StepAlterations, "extracting alteration details", "clauses", len(found))
	details := p.Alterations.Run(ctx, found)
	failed := 0
	for _, d := range details {
		if d.Has(constants.FieldError) {
			failed++
		}
	}
	p.progress(runID, constants.StepAlterations, "alteration details extracted",
		"records", len(details), "failed", failed)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4) summary
	var summary *string
	p.progress(runID, constants.StepSummary, "summarizing document")
	s, err := p.Summary.Run(ctx, tr.Text)
	switch {
	case err != nil && p.StrictSummary:
		p.Logger.Error("processor.summary.failed", "run_id", runID, "error", err)
		return nil, err
	case err != nil:
		p.Logger.Warn("processor.summary.failed", "run_id", runID, "error", err)
		p.progress(runID, constants.StepSummary, "summary unavailable")
	default:
		summary = &s
		p.progress(runID, constants.StepSummary, "document summarized", "summary_chars", len([]rune(s)))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 5) metadata
	p.progress(runID, constants.StepMetadata, "extracting property metadata")
	meta := p.Metadata.Run(ctx, tr.Text)
	p.progress(runID, constants.StepMetadata, "property metadata extracted")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &entity.Result{
		ExtractedData:     meta,
		Summary:           summary,
		AlterationDetails: details,
		RunID:             runID,
		SourcePath:        doc.SourcePath,
		Pages:             tr.Pages,
		Clauses:           found,
		Duration:          time.Since(start),
	}
	p.Logger.Info("extraction complete",
		"run_id", runID,
		"clauses", len(found),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// progress emits one console line; step and run_id ride along as attributes.
func (p *Processor) progress(runID string, step constants.Step, msg string, attrs ...any) {
	p.Logger.Info(msg, append([]any{"step", string(step), "run_id", runID}, attrs...)...)
}
