package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"question", "What is the capital of France?", []string{"capital", "france"}},
		{"mixed case and digits", "Apollo 11 LANDED", []string{"apollo", "11", "landed"}},
		{"apostrophe", "Don't panic, it's Earth's moon", []string{"don't", "panic", "it's", "earth's", "moon"}},
		{"unicode letters", "Zürich café", []string{"zürich", "café"}},
		{"only stopwords", "what is the", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("what"))
	assert.False(t, IsStopword("paris"))
}

func TestSentences(t *testing.T) {
	text := "Paris is the capital of France. It is known for the Eiffel Tower!\nNo full stop here"

	assert.Equal(t, []string{
		"Paris is the capital of France.",
		"It is known for the Eiffel Tower!",
		"No full stop here",
	}, Sentences(text))
	assert.Empty(t, Sentences("  \n "))
}

func TestSentences_LineWithoutPunctuation(t *testing.T) {
	assert.Equal(t, []string{"Title line", "Body sentence."}, Sentences("Title line\nBody sentence."))
}
