package provider

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/lease-extractor/constants"
	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/llm"
	"github.com/joseph-ayodele/lease-extractor/internal/llm/huggingface"
	"github.com/joseph-ayodele/lease-extractor/internal/llm/openai"
)

// New builds the model provider named by cfg.Provider. The same instance serves
// clause QA, metadata QA and summarization.
func New(cfg common.ModelConfig, logger *slog.Logger) (llm.Model, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Provider {
	case "", constants.ProviderHuggingFace:
		return huggingface.NewClient(huggingface.Config{
			Token:        cfg.HFToken,
			BaseURL:      cfg.HFBaseURL,
			QAModel:      cfg.HFQAModel,
			SummaryModel: cfg.HFSummaryModel,
			Timeout:      cfg.Timeout,
			WaitForModel: true,
		}, logger), nil
	case constants.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:      cfg.OpenAIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.OpenAITemperature,
			Timeout:     cfg.Timeout,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unsupported model provider: %q", cfg.Provider)
	}
}
