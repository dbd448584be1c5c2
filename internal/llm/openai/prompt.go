package openai

import (
	"strconv"
	"strings"
)

func buildQASystemPrompt() string {
	parts := []string{
		"You are an extractive question-answering model for commercial lease documents.",
		"Answer ONLY with the shortest exact span copied from the context; never paraphrase.",
		"If the context does not contain an answer, return the closest relevant span and a low score.",
		`Return ONLY JSON: {"answer": "<span>", "score": <confidence between 0 and 1>}.`,
	}
	return strings.Join(parts, " ")
}

func buildQAUserPrompt(question, contextText string) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(strings.TrimSpace(question))
	b.WriteString("\n\nContext:\n")
	b.WriteString(contextText)
	return b.String()
}

func buildSummarySystemPrompt(minLen, maxLen int) string {
	parts := []string{
		"You summarize commercial lease documents for property managers.",
		"Write a neutral, factual abstractive summary of the text you are given.",
		"The summary must be between " + strconv.Itoa(minLen) + " and " + strconv.Itoa(maxLen) + " words.",
		`Return ONLY JSON: {"summary": "<text>"}.`,
	}
	return strings.Join(parts, " ")
}
