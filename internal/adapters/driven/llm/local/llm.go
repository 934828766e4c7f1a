// Package local provides an offline extractive reader behind the LLM port.
//
// It does not generate text. It reads the "Context:" and "Question:" sections
// of a grounded-answer prompt and returns the context sentence that shares the
// most content words with the question, or an empty string when no sentence
// shares any. An empty result lets the caller fall back to its refusal.
package local

import (
	"context"
	"strings"

	"github.com/custodia-labs/ragqa/internal/adapters/driven/lexical"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is the reported model name.
const DefaultModel = "extractive"

const (
	contextMarker  = "Context:"
	questionMarker = "Question:"
	answerMarker   = "Answer:"
)

// LLMService answers by sentence extraction.
type LLMService struct{}

// NewLLMService creates a new extractive reader.
func NewLLMService() *LLMService {
	return &LLMService{}
}

// Generate returns the best-matching context sentence, trimmed to
// opts.MaxTokens words when set.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	contextText, question, ok := splitPrompt(prompt)
	if !ok {
		return "", nil
	}

	want := make(map[string]struct{})
	for _, tok := range lexical.Tokens(question) {
		want[tok] = struct{}{}
	}
	if len(want) == 0 {
		return "", nil
	}

	best, bestScore := "", 0
	for _, sentence := range lexical.Sentences(contextText) {
		seen := make(map[string]struct{})
		score := 0
		for _, tok := range lexical.Tokens(sentence) {
			if _, hit := want[tok]; !hit {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			score++
		}
		// strict comparison keeps the earliest, i.e. highest-ranked, sentence on ties
		if score > bestScore {
			best, bestScore = sentence, score
		}
	}

	return truncateWords(best, opts.MaxTokens), nil
}

// ModelName returns the name of the reader.
func (s *LLMService) ModelName() string {
	return DefaultModel
}

// Ping always succeeds.
func (s *LLMService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}

// splitPrompt extracts the context block and question from a prompt laid out as
// "...Context:\n<ctx>\n\nQuestion: <q>\nAnswer:".
func splitPrompt(prompt string) (contextText, question string, ok bool) {
	ci := strings.Index(prompt, contextMarker)
	qi := strings.LastIndex(prompt, questionMarker)
	if ci < 0 || qi < 0 || qi < ci {
		return "", "", false
	}

	contextText = strings.TrimSpace(prompt[ci+len(contextMarker) : qi])
	question = prompt[qi+len(questionMarker):]
	if ai := strings.LastIndex(question, answerMarker); ai >= 0 {
		question = question[:ai]
	}
	return contextText, strings.TrimSpace(question), true
}

func truncateWords(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) <= limit {
		return s
	}
	return strings.Join(words[:limit], " ")
}
