package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/entity"
	"github.com/joseph-ayodele/lease-extractor/internal/llm"
)

// MetadataStage asks the property-metadata questions against the whole document.
type MetadataStage struct {
	Logger    *slog.Logger
	QA        llm.QuestionAnswerer
	Questions constants.QuestionSet
}

func NewMetadataStage(logger *slog.Logger, qa llm.QuestionAnswerer, questions constants.QuestionSet) *MetadataStage {
	if logger == nil {
		logger = slog.Default()
	}
	if questions == nil {
		questions = constants.DefaultMetadataQuestions()
	}
	return &MetadataStage{Logger: logger, QA: qa, Questions: questions}
}

// Run answers every question; a failed field stays null and the rest are unaffected.
func (s *MetadataStage) Run(ctx context.Context, text string) *entity.Record {
	rec := entity.NewRecord(s.Questions.Fields())
	for _, q := range s.Questions {
		ans, err := s.QA.Answer(ctx, q.Question, text)
		if err != nil {
			s.Logger.Warn("pipeline.metadata.field_failed",
				"run_id", common.RunIDFromContext(ctx),
				"field", q.Field,
				"error", common.QAError(q.Question, err),
			)
			continue
		}
		rec.Set(q.Field, ans.Text)
		s.Logger.Debug("pipeline.metadata.answer",
			"run_id", common.RunIDFromContext(ctx),
			"field", q.Field,
			"score", ans.Score,
		)
	}
	return rec
}
