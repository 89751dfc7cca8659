package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPagesPreservesOrder(t *testing.T) {
	got := splitPages("page one\fpage two\fpage three")
	assert.Equal(t, []string{"page one", "page two", "page three"}, got)
}

func TestSplitPagesTrimsAndKeepsEmptySpans(t *testing.T) {
	// A page yielding no text becomes an empty span; the caller drops it.
	got := splitPages("  first  \f   \fthird")
	assert.Equal(t, []string{"first", "", "third"}, got)
}

func TestSplitPagesSinglePage(t *testing.T) {
	got := splitPages("only page")
	assert.Equal(t, []string{"only page"}, got)
}
