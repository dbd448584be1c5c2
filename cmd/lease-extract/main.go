package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/clauses"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/export"
	"github.com/joseph-ayodele/lease-extractor/internal/extract"
	"github.com/joseph-ayodele/lease-extractor/internal/llm"
	"github.com/joseph-ayodele/lease-extractor/internal/llm/provider"
	"github.com/joseph-ayodele/lease-extractor/internal/pipeline"
)

func main() {
	cfg := common.LoadConfig()
	logger := common.NewLogger(cfg.Log, os.Stderr)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "lease-extract <lease.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	questions, err := constants.LoadQuestions(cfg.Pipeline.QuestionsFile)
	if err != nil {
		logger.Error("load questions", "file", cfg.Pipeline.QuestionsFile, "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor, err := extract.New(cfg.Text, logger)
	if err != nil {
		logger.Error("text backend", "error", err)
		os.Exit(2)
	}
	model, err := provider.New(cfg.Model, logger)
	if err != nil {
		logger.Error("model provider", "error", err)
		os.Exit(2)
	}

	// one model instance serves clause QA, summary and metadata QA
	p := pipeline.NewProcessor(logger, extractor,
		clauses.NewFilter(cfg.Pipeline.ClauseKeyword),
		pipeline.NewAlterationStage(logger, model, questions.Alteration, cfg.Pipeline.QAConcurrency),
		pipeline.NewSummaryStage(logger, model, cfg.Pipeline.SummaryPrefixChars, llm.SummaryOptions{
			MinLength: cfg.Pipeline.SummaryMinLength,
			MaxLength: cfg.Pipeline.SummaryMaxLength,
			DoSample:  false,
		}),
		pipeline.NewMetadataStage(logger, model, questions.Metadata),
		cfg.Pipeline.StrictSummary,
	)

	res, err := p.ProcessFile(ctx, path)
	if err != nil {
		logger.Error("extraction failed", "path", path, "code", common.CodeOf(err), "error", err)
		os.Exit(1)
	}

	out, err := res.MarshalIndented()
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	w := bufio.NewWriter(os.Stdout)
	_, _ = w.Write(out)
	if err := w.Flush(); err != nil {
		logger.Error("write result", "error", err)
		os.Exit(1)
	}

	if cfg.Export.XLSXPath != "" {
		if err := export.NewService(logger).WriteFile(ctx, res, cfg.Export.XLSXPath); err != nil {
			logger.Error("xlsx export failed", "path", cfg.Export.XLSXPath, "error", err)
			os.Exit(1)
		}
		logger.Info("xlsx written", "path", cfg.Export.XLSXPath)
	}
}
