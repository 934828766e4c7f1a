package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
	"github.com/custodia-labs/ragqa/internal/logger"
)

// defaultGroundedPrompt is used when no prompt store is configured or the
// stored template is unusable. Placeholders: context, then question.
const defaultGroundedPrompt = `Answer the question using ONLY this context.
If the answer is not in the context, say: ` + domain.FallbackAnswer + `

Context:
%s

Question: %s
Answer:`

// Answerer turns retrieved contexts and a question into a grounded answer,
// or the fallback sentence when the contexts cannot support one.
type Answerer struct {
	llm          driven.LLMService
	prompts      driven.PromptStore
	contextChars int
	maxTokens    int
}

// AnswererOption configures an Answerer.
type AnswererOption func(*Answerer)

// WithContextChars caps the joined context passed to the generator.
func WithContextChars(n int) AnswererOption {
	return func(a *Answerer) {
		if n > 0 {
			a.contextChars = n
		}
	}
}

// WithMaxTokens caps the generated answer length.
func WithMaxTokens(n int) AnswererOption {
	return func(a *Answerer) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// WithPromptStore reads the grounded_answer template from store.
func WithPromptStore(store driven.PromptStore) AnswererOption {
	return func(a *Answerer) {
		a.prompts = store
	}
}

// NewAnswerer creates an answerer backed by llm.
func NewAnswerer(llm driven.LLMService, opts ...AnswererOption) *Answerer {
	a := &Answerer{
		llm:          llm,
		contextChars: domain.DefaultContextChars,
		maxTokens:    domain.DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Answer returns the trimmed generation for question over contexts.
// No contexts, or a blank generation, yields domain.FallbackAnswer.
func (a *Answerer) Answer(ctx context.Context, question string, contexts []string) (string, error) {
	if len(contexts) == 0 {
		logger.Debug("No contexts, skipping generation")
		return domain.FallbackAnswer, nil
	}

	prompt := a.BuildPrompt(contexts, question)
	logger.Debug("Prompt: %d chars, max_tokens=%d", utf8.RuneCountInString(prompt), a.maxTokens)

	out, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   a.maxTokens,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		logger.Debug("Empty generation, falling back")
		return domain.FallbackAnswer, nil
	}
	return out, nil
}

// BuildPrompt joins contexts with newlines, truncates the result to the
// context budget and fills the grounded_answer template.
func (a *Answerer) BuildPrompt(contexts []string, question string) string {
	block := truncateRunes(strings.Join(contexts, "\n"), a.contextChars)
	return fmt.Sprintf(a.template(), block, question)
}

func (a *Answerer) template() string {
	if a.prompts == nil {
		return defaultGroundedPrompt
	}
	tpl, err := a.prompts.Load(driven.PromptGroundedAnswer)
	if err != nil {
		logger.Warn("load prompt %q: %v", driven.PromptGroundedAnswer, err)
		return defaultGroundedPrompt
	}
	if strings.Count(tpl, "%s") != 2 {
		logger.Warn("prompt %q needs exactly two %%s placeholders, using built-in", driven.PromptGroundedAnswer)
		return defaultGroundedPrompt
	}
	return tpl
}

// truncateRunes returns the first n characters of s.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
