package vectorstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapMetadataTextShortUnchanged(t *testing.T) {
	assert.Equal(t, "short", CapMetadataText("short"))
}

func TestCapMetadataTextTruncates(t *testing.T) {
	long := strings.Repeat("x", metadataTextCap+500)
	got := CapMetadataText(long)
	assert.Len(t, []rune(got), metadataTextCap)
}

func TestCapMetadataTextRuneAware(t *testing.T) {
	long := strings.Repeat("ü", metadataTextCap+10)
	got := CapMetadataText(long)
	assert.Len(t, []rune(got), metadataTextCap)
	assert.True(t, strings.HasSuffix(got, "ü"))
}

func TestNewRejectsInvalidTableName(t *testing.T) {
	_, err := New(context.Background(), "postgres://localhost/db", "bad-table;drop", 768)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid index table name")
}

func TestNewRejectsEmptyURL(t *testing.T) {
	_, err := New(context.Background(), "", "textbook_passages", 768)
	require.Error(t, err)
}
