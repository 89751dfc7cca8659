package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateShortInputUnchanged(t *testing.T) {
	text := "The Pythagorean theorem."
	assert.Equal(t, text, TruncateToTokenBudget(text))
}

func TestTruncateAtBudgetBoundaryUnchanged(t *testing.T) {
	text := strings.Repeat("a", maxInputTokens*charsPerToken)
	assert.Equal(t, text, TruncateToTokenBudget(text))
}

func TestTruncateLongInput(t *testing.T) {
	text := strings.Repeat("a", maxInputTokens*charsPerToken+5000)
	got := TruncateToTokenBudget(text)
	assert.Len(t, []rune(got), maxInputTokens*charsPerToken)
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	// Multi-byte runes must not be split mid-sequence.
	text := strings.Repeat("é", maxInputTokens*charsPerToken+100)
	got := TruncateToTokenBudget(text)
	assert.Len(t, []rune(got), maxInputTokens*charsPerToken)
	assert.True(t, strings.HasSuffix(got, "é"))
}
