package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/entity"
	"github.com/joseph-ayodele/lease-extractor/internal/llm"
)

// AlterationStage answers a fixed battery of questions against each clause.
type AlterationStage struct {
	Logger      *slog.Logger
	QA          llm.QuestionAnswerer
	Questions   constants.QuestionSet
	Concurrency int
}

func NewAlterationStage(logger *slog.Logger, qa llm.QuestionAnswerer, questions constants.QuestionSet, concurrency int) *AlterationStage {
	if logger == nil {
		logger = slog.Default()
	}
	if questions == nil {
		questions = constants.DefaultAlterationQuestions()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &AlterationStage{Logger: logger, QA: qa, Questions: questions, Concurrency: concurrency}
}

// Fields returns the record keys in output order: the question fields, then the clause text.
func (s *AlterationStage) Fields() []string {
	return append(s.Questions.Fields(), constants.FieldSummaryOfAlteration)
}

// Run returns one record per clause, in clause order. A QA failure stops that clause's
// remaining questions and is recorded under "Error"; other clauses are unaffected.
func (s *AlterationStage) Run(ctx context.Context, clauses []string) []*entity.Record {
	out := make([]*entity.Record, len(clauses))
	if len(clauses) == 0 {
		return out
	}

	var g errgroup.Group
	g.SetLimit(s.Concurrency)
	for i, clause := range clauses {
		g.Go(func() error {
			// each goroutine owns out[i]
			out[i] = s.extractClause(common.WithClauseIndex(ctx, i), i, clause)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *AlterationStage) extractClause(ctx context.Context, idx int, clause string) *entity.Record {
	rec := entity.NewRecord(s.Fields())
	rec.Set(constants.FieldSummaryOfAlteration, clause)

	start := time.Now()
	for _, q := range s.Questions {
		ans, err := s.QA.Answer(ctx, q.Question, clause)
		if err != nil {
			msg := err.Error()
			if msg == "" {
				msg = common.ErrQA.Error()
			}
			rec.Set(constants.FieldError, msg)
			s.Logger.Warn("pipeline.alteration.clause_failed",
				"run_id", common.RunIDFromContext(ctx),
				"clause", idx,
				"field", q.Field,
				"error", common.QAError(q.Question, err),
			)
			return rec
		}
		rec.Set(q.Field, ans.Text)
		s.Logger.Debug("pipeline.alteration.answer",
			"run_id", common.RunIDFromContext(ctx),
			"clause", idx,
			"field", q.Field,
			"score", ans.Score,
		)
	}
	s.Logger.Debug("pipeline.alteration.clause_ok",
		"run_id", common.RunIDFromContext(ctx),
		"clause", idx,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec
}
