package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	books, err := Load("")
	require.NoError(t, err)
	require.Len(t, books, 10)
	assert.Equal(t, "Elementary_Algebra_2e", books[0].Name)
	for _, b := range books {
		assert.NotEmpty(t, b.URL)
	}
}

func TestLoadCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "books:\n  - name: Test_Book\n    url: https://example.com/test.pdf\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	books, err := Load(path)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Test_Book", books[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "books:\n" +
		"  - name: Same\n    url: https://example.com/a.pdf\n" +
		"  - name: Same\n    url: https://example.com/b.pdf\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadRejectsIncompleteEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("books:\n  - name: NoURL\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("books: []\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
