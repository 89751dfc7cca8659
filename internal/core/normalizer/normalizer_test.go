package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePreservesParagraphBreaks(t *testing.T) {
	got := Normalize("First paragraph.\n\nSecond paragraph.")
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", got)
}

func TestNormalizeCollapsesIntraParagraphWhitespace(t *testing.T) {
	got := Normalize("one   two\tthree\nfour")
	assert.Equal(t, "one two three four", got)
}

func TestNormalizeCollapsesExtraBlankLines(t *testing.T) {
	got := Normalize("a\n\n\n\nb")
	assert.Equal(t, "a\n\nb", got)
}

func TestNormalizeStripsPageArtifacts(t *testing.T) {
	raw := "The quotient rule.\n42\nPage 17\nIt follows that."
	got := Normalize(raw)
	assert.Equal(t, "The quotient rule. It follows that.", got)
}

func TestNormalizeStripsURLsAndEmails(t *testing.T) {
	raw := "See https://openstax.org/details for help, or write support@openstax.org today."
	got := Normalize(raw)
	assert.NotContains(t, got, "openstax.org")
	assert.NotContains(t, got, "@")
}

func TestNormalizeQuotesAndDashes(t *testing.T) {
	got := Normalize("“hello” — ‘world’ – done")
	assert.Equal(t, `"hello" - 'world' - done`, got)
}

func TestNormalizeTrims(t *testing.T) {
	got := Normalize("  \n\n  padded  \n\n  ")
	assert.Equal(t, "padded", got)
}

func TestNormalizeDeterministic(t *testing.T) {
	raw := "Some “text” with\n\nPage 3\n\nstructure   and https://a.b junk."
	assert.Equal(t, Normalize(raw), Normalize(raw))
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("  \n \n  "))
}
