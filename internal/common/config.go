package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/lease-extractor/constants"
)

// Config holds all application configuration
type Config struct {
	Text     TextConfig
	Model    ModelConfig
	Pipeline PipelineConfig
	Export   ExportConfig
	Log      LogConfig
}

// TextConfig holds PDF text extraction configuration
type TextConfig struct {
	Backend   string // constants.BackendPDF | constants.BackendPdftotext | constants.BackendOCR
	Pdftotext string

	// scanned documents (BackendOCR)
	Pdftoppm    string
	Tesseract   string
	OCRLang     string
	TessdataDir string
	OCRDPI      int
}

// ModelConfig holds QA and summarization provider configuration
type ModelConfig struct {
	Provider string // constants.ProviderHuggingFace | constants.ProviderOpenAI
	Timeout  time.Duration

	HFToken        string
	HFBaseURL      string
	HFQAModel      string
	HFSummaryModel string

	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITemperature float32
}

// PipelineConfig holds the extraction pipeline knobs
type PipelineConfig struct {
	ClauseKeyword      string
	QAConcurrency      int
	SummaryPrefixChars int
	SummaryMinLength   int
	SummaryMaxLength   int
	StrictSummary      bool
	QuestionsFile      string
}

// ExportConfig holds optional output sinks besides stdout
type ExportConfig struct {
	XLSXPath string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string // text | json
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Text: TextConfig{
			Backend:     strings.ToLower(getEnv("TEXT_BACKEND", constants.BackendPDF)),
			Pdftotext:   getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			OCRLang:     getEnv("TESSERACT_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			OCRDPI:      getEnvAsInt("OCR_DPI", 300),
		},
		Model: ModelConfig{
			Provider:          strings.ToLower(getEnv("QA_PROVIDER", constants.ProviderHuggingFace)),
			Timeout:           getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
			HFToken:           getEnv("HF_API_TOKEN", ""),
			HFBaseURL:         getEnv("HF_BASE_URL", "https://api-inference.huggingface.co/models"),
			HFQAModel:         getEnv("HF_QA_MODEL", "deepset/roberta-large-squad2"),
			HFSummaryModel:    getEnv("HF_SUMMARY_MODEL", "facebook/bart-large-cnn"),
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAITemperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
		},
		Pipeline: PipelineConfig{
			ClauseKeyword:      getEnv("CLAUSE_KEYWORD", constants.DefaultClauseKeyword),
			QAConcurrency:      getEnvAsInt("QA_CONCURRENCY", 1),
			SummaryPrefixChars: getEnvAsInt("SUMMARY_PREFIX_CHARS", 3000),
			SummaryMinLength:   getEnvAsInt("SUMMARY_MIN_LENGTH", 30),
			SummaryMaxLength:   getEnvAsInt("SUMMARY_MAX_LENGTH", 130),
			StrictSummary:      getEnvAsBool("STRICT_SUMMARY", false),
			QuestionsFile:      getEnv("QUESTIONS_FILE", ""),
		},
		Export: ExportConfig{
			XLSXPath: getEnv("EXPORT_XLSX_PATH", ""),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("TEXT_BACKEND", c.Text.Backend, OneOf(constants.BackendPDF, constants.BackendPdftotext, constants.BackendOCR)).
		Field("QA_PROVIDER", c.Model.Provider, OneOf(constants.ProviderHuggingFace, constants.ProviderOpenAI)).
		Field("CLAUSE_KEYWORD", c.Pipeline.ClauseKeyword, Required).
		Field("QA_CONCURRENCY", c.Pipeline.QAConcurrency, Positive).
		Field("SUMMARY_PREFIX_CHARS", c.Pipeline.SummaryPrefixChars, Positive).
		Field("SUMMARY_MAX_LENGTH", c.Pipeline.SummaryMaxLength, Positive)

	switch c.Model.Provider {
	case constants.ProviderHuggingFace:
		v.Field("HF_API_TOKEN", c.Model.HFToken, Required)
	case constants.ProviderOpenAI:
		v.Field("OPENAI_API_KEY", c.Model.OpenAIKey, Required)
	}
	if c.Pipeline.SummaryMinLength < 0 || c.Pipeline.SummaryMinLength > c.Pipeline.SummaryMaxLength {
		v.Add(ValidationError{
			Field:   "SUMMARY_MIN_LENGTH",
			Value:   c.Pipeline.SummaryMinLength,
			Message: "must be between 0 and SUMMARY_MAX_LENGTH",
		})
	}

	if v.HasErrors() {
		return NewAppError(CodeConfig, v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
