package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joseph-ayodele/lease-extractor/internal/clauses"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/extract"
)

// extracttext prints a PDF's text, or only its keyword clauses, without calling any model.
func main() {
	cfg := common.LoadConfig()
	logger := common.NewLogger(cfg.Log, os.Stderr)

	if len(os.Args) < 2 || len(os.Args) > 3 || (len(os.Args) == 3 && os.Args[2] != "clauses") {
		logger.Error("usage", "cmd", "extracttext <lease.pdf> [clauses]")
		os.Exit(2)
	}
	path := os.Args[1]
	onlyClauses := len(os.Args) == 3

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	ex, err := extract.New(cfg.Text, logger)
	if err != nil {
		logger.Error("text backend", "error", err)
		os.Exit(2)
	}

	start := time.Now()
	res, err := ex.Extract(ctx, path)
	dur := time.Since(start)
	if err != nil {
		logger.Error("text extraction failed",
			"path", path, "code", common.CodeOf(err), "error", err, "duration_ms", dur.Milliseconds())
		os.Exit(1)
	}

	logger.Info("text extraction OK",
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"duration_ms", dur.Milliseconds(),
	)

	if !onlyClauses {
		fmt.Print(res.Text)
		return
	}
	found := clauses.NewFilter(cfg.Pipeline.ClauseKeyword).Apply(res.Text)
	logger.Info("clauses filtered", "keyword", cfg.Pipeline.ClauseKeyword, "clauses", len(found))
	for _, c := range found {
		fmt.Println(c)
	}
}
