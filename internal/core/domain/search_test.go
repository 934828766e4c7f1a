package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackAnswer(t *testing.T) {
	assert.Equal(t, "I don't know based on the provided document.", FallbackAnswer)
}

func TestAnswer_IsFallback(t *testing.T) {
	assert.True(t, Answer{Answer: FallbackAnswer}.IsFallback())
	assert.False(t, Answer{Answer: "Paris is the capital of France."}.IsFallback())
}
