package huggingface

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the Hugging Face Inference API client.
type Config struct {
	Token        string        // if empty, falls back to env HF_API_TOKEN
	BaseURL      string        // default https://api-inference.huggingface.co/models
	QAModel      string        // e.g., "deepset/roberta-large-squad2"
	SummaryModel string        // e.g., "facebook/bart-large-cnn"
	Timeout      time.Duration // http client timeout
	WaitForModel bool          // block on cold models instead of failing with 503
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Token == "" {
		cfg.Token = os.Getenv("HF_API_TOKEN")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if cfg.QAModel == "" {
		cfg.QAModel = "deepset/roberta-large-squad2"
	}
	if cfg.SummaryModel == "" {
		cfg.SummaryModel = "facebook/bart-large-cnn"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
