package chunker

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/mathsnap/ingest/internal/models"
)

// idPrefixLen is how many leading characters of the passage text
// participate in its identity.
const idPrefixLen = 100

// Identity derives the deterministic, content-addressed id for a passage.
// It hashes the book name, the passage's position, and the first 100
// characters of its text, so an unchanged passage maps to the same id on
// every run (upsert overwrites instead of duplicating) while a shift in
// position or leading text yields a new record.
func Identity(p models.Passage) string {
	prefix := p.Text
	if runes := []rune(prefix); len(runes) > idPrefixLen {
		prefix = string(runes[:idPrefixLen])
	}
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d_%s", p.Book, p.SequenceIndex, prefix)))
	return hex.EncodeToString(sum[:])
}
