package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes carried by AppError.
const (
	CodeDocumentAccess = "DOCUMENT_ACCESS"
	CodePageExtraction = "PAGE_EXTRACTION"
	CodeQA             = "QA"
	CodeSummarization  = "SUMMARIZATION"
	CodeConfig         = "CONFIG_ERROR"
)

// Common application errors
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDocumentAccess = errors.New("document access failed")
	ErrPageExtraction = errors.New("page text extraction failed")
	ErrQA             = errors.New("question answering failed")
	ErrSummarization  = errors.New("summarization failed")
	ErrEmptyText      = errors.New("empty text")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// DocumentAccessError reports a PDF that cannot be opened or parsed.
func DocumentAccessError(path string, cause error) error {
	return NewAppError(CodeDocumentAccess, path, fmt.Errorf("%w: %w", ErrDocumentAccess, cause))
}

// PageExtractionError reports a page that produced no text.
func PageExtractionError(page int, cause error) error {
	msg := fmt.Sprintf("page %d", page)
	if cause == nil {
		return NewAppError(CodePageExtraction, msg, ErrPageExtraction)
	}
	return NewAppError(CodePageExtraction, msg, fmt.Errorf("%w: %w", ErrPageExtraction, cause))
}

// SummarizationError reports a failed or impossible summarization.
func SummarizationError(cause error) error {
	return NewAppError(CodeSummarization, "summarize document", fmt.Errorf("%w: %w", ErrSummarization, cause))
}

// QAError reports a failed question-answering call.
func QAError(question string, cause error) error {
	return NewAppError(CodeQA, question, fmt.Errorf("%w: %w", ErrQA, cause))
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
