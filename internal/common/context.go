package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRunID  contextKey = "run_id"
	ContextKeyClause contextKey = "clause_index"
)

// WithRunID tags the context with the extraction run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RunIDFromContext extracts the run ID from context
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(ContextKeyRunID).(string); ok {
		return runID
	}
	return ""
}

// WithClauseIndex tags the context with the clause being processed.
func WithClauseIndex(ctx context.Context, idx int) context.Context {
	return context.WithValue(ctx, ContextKeyClause, idx)
}

// ClauseIndexFromContext returns the clause index, or -1 outside clause processing.
func ClauseIndexFromContext(ctx context.Context) int {
	if idx, ok := ctx.Value(ContextKeyClause).(int); ok {
		return idx
	}
	return -1
}
