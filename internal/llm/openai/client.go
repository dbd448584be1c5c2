package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/lease-extractor/internal/common"
	"github.com/joseph-ayodele/lease-extractor/internal/llm"
)

// Answer implements llm.QuestionAnswerer using a JSON-mode chat completion that
// is instructed to copy its answer from the context.
func (c *Client) Answer(ctx context.Context, question, contextText string) (llm.Answer, error) {
	if strings.TrimSpace(contextText) == "" {
		return llm.Answer{}, fmt.Errorf("qa: %w: context is empty", common.ErrEmptyText)
	}
	rid := uuid.New().String()
	start := time.Now()

	content, err := c.complete(ctx, rid, c.cfg.Temperature,
		buildQASystemPrompt(),
		buildQAUserPrompt(question, contextText),
	)
	if err != nil {
		return llm.Answer{}, err
	}

	rawContent := []byte(content)
	if norm, nErr := llm.NormalizeQAResponse(rawContent); nErr == nil {
		rawContent = norm
	}
	if err := llm.ValidateJSONAgainstSchema(llm.QAResponseSchema(), rawContent); err != nil {
		c.log.Error("llm.qa.schema_validation_failed",
			"req_id", rid, "error", err, "content", content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Answer{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var out llm.Answer
	if err := json.Unmarshal(rawContent, &out); err != nil {
		return llm.Answer{}, fmt.Errorf("unmarshal answer: %w", err)
	}
	out.Text = strings.TrimSpace(out.Text)
	// Chat models do not report offsets; recover them when the span is verbatim.
	if i := strings.Index(contextText, out.Text); out.Text != "" && i >= 0 {
		out.Start, out.End = i, i+len(out.Text)
	}

	c.log.Debug("llm.qa.ok",
		"req_id", rid,
		"model", c.cfg.Model,
		"question", question,
		"score", out.Score,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Summarize implements llm.Summarizer. DoSample=false pins temperature to 0.
func (c *Client) Summarize(ctx context.Context, text string, opts llm.SummaryOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("summarize: %w", common.ErrEmptyText)
	}
	rid := uuid.New().String()
	start := time.Now()

	temp := float32(0)
	if opts.DoSample {
		temp = c.cfg.Temperature
	}
	content, err := c.complete(ctx, rid, temp, buildSummarySystemPrompt(opts.MinLength, opts.MaxLength), text)
	if err != nil {
		return "", err
	}
	if err := llm.ValidateJSONAgainstSchema(llm.ChatSummarySchema(), []byte(content)); err != nil {
		c.log.Error("llm.summary.schema_validation_failed",
			"req_id", rid, "error", err, "content", content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("schema validation failed: %w", err)
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return "", fmt.Errorf("unmarshal summary: %w", err)
	}

	c.log.Debug("llm.summary.ok",
		"req_id", rid,
		"model", c.cfg.Model,
		"input_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(out.Summary), nil
}

// complete runs one JSON-mode chat completion and returns the first choice's content.
func (c *Client) complete(ctx context.Context, rid string, temperature float32, system, user string) (string, error) {
	start := time.Now()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.openai.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("openai: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.openai.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.openai.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("no choices in openai response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}
