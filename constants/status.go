package constants

// Step names the stages of one extraction run; used as the "step" attribute on progress logs.
type Step string

const (
	StepExtractText Step = "extract_text"
	StepFilter      Step = "filter_clauses"
	StepAlterations Step = "alteration_details"
	StepSummary     Step = "summarize"
	StepMetadata    Step = "metadata"
)

// Text backends for the extractor.
const (
	BackendPDF       = "pdf"
	BackendPdftotext = "pdftotext"
	BackendOCR       = "ocr"
)

// Model providers.
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

// DefaultClauseKeyword selects clauses worth asking about.
const DefaultClauseKeyword = "alteration"
