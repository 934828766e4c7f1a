// Package lexical provides the tokenizer shared by the built-in embedder and
// the built-in extractive reader.
package lexical

import (
	"regexp"
	"strings"
)

var (
	tokenPattern    = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)*`)
	sentencePattern = regexp.MustCompile(`[^.!?\n]+(?:[.!?]+|\n|$)`)
)

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on",
		"at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its",
		"this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through", "during", "before", "after",
		"above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don",
		"should", "now", "what", "which", "who", "whom", "whose", "when", "where", "why", "how",
		"do", "does", "did", "i", "you", "me", "my", "we", "our", "your", "tell", "there",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// IsStopword reports whether the lower-cased token carries no content.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// Tokens returns the lower-cased content words of text, stopwords removed.
func Tokens(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if !IsStopword(t) {
			out = append(out, t)
		}
	}
	return out
}

// Sentences splits text on sentence punctuation and line breaks.
// Each sentence is trimmed and keeps its terminal punctuation.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentencePattern.FindAllString(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
