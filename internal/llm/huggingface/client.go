package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/llm"
)

// Answer implements llm.QuestionAnswerer against a question-answering model.
func (c *Client) Answer(ctx context.Context, question, contextText string) (llm.Answer, error) {
	if strings.TrimSpace(contextText) == "" {
		return llm.Answer{}, fmt.Errorf("qa: %w: context is empty", common.ErrEmptyText)
	}
	start := time.Now()

	body := map[string]any{
		"inputs": map[string]any{
			"question": question,
			"context":  contextText,
		},
		"options": c.options(),
	}
	raw, _, err := llm.SendJSON(ctx, c.http, c.modelURL(c.cfg.QAModel), body, c.headers(), c.logger)
	if err != nil {
		return llm.Answer{}, fmt.Errorf("huggingface qa: %w", err)
	}

	norm, err := llm.NormalizeQAResponse(raw)
	if err != nil {
		return llm.Answer{}, err
	}
	if err := llm.ValidateJSONAgainstSchema(llm.QAResponseSchema(), norm); err != nil {
		c.logger.Error("llm.qa.schema_validation_failed", "model", c.cfg.QAModel, "error", err, "raw", string(raw))
		return llm.Answer{}, fmt.Errorf("huggingface qa: %w", err)
	}

	var out llm.Answer
	if err := json.Unmarshal(norm, &out); err != nil {
		return llm.Answer{}, fmt.Errorf("unmarshal answer: %w", err)
	}

	c.logger.Debug("llm.qa.ok",
		"model", c.cfg.QAModel,
		"question", question,
		"context_len", len(contextText),
		"score", out.Score,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Summarize implements llm.Summarizer against a summarization model.
func (c *Client) Summarize(ctx context.Context, text string, opts llm.SummaryOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("summarize: %w", common.ErrEmptyText)
	}
	start := time.Now()

	body := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"min_length": opts.MinLength,
			"max_length": opts.MaxLength,
			"do_sample":  opts.DoSample,
		},
		"options": c.options(),
	}
	raw, _, err := llm.SendJSON(ctx, c.http, c.modelURL(c.cfg.SummaryModel), body, c.headers(), c.logger)
	if err != nil {
		return "", fmt.Errorf("huggingface summarization: %w", err)
	}

	norm, err := llm.NormalizeSummaryResponse(raw)
	if err != nil {
		return "", err
	}
	if err := llm.ValidateJSONAgainstSchema(llm.SummaryResponseSchema(), norm); err != nil {
		c.logger.Error("llm.summary.schema_validation_failed", "model", c.cfg.SummaryModel, "error", err, "raw", string(raw))
		return "", fmt.Errorf("huggingface summarization: %w", err)
	}

	var out []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.Unmarshal(norm, &out); err != nil {
		return "", fmt.Errorf("unmarshal summary: %w", err)
	}

	c.logger.Debug("llm.summary.ok",
		"model", c.cfg.SummaryModel,
		"input_len", len(text),
		"summary_len", len(out[0].SummaryText),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out[0].SummaryText, nil
}

func (c *Client) modelURL(model string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(model, "/")
}

func (c *Client) headers() map[string]string {
	h := map[string]string{}
	if c.cfg.Token != "" {
		h["Authorization"] = "Bearer " + c.cfg.Token
	}
	return h
}

func (c *Client) options() map[string]any {
	return map[string]any{"wait_for_model": c.cfg.WaitForModel}
}
