package core

import (
	"context"

	"github.com/mathsnap/ingest/internal/models"
)

// Fetcher downloads the raw bytes of a source document to a local path.
// It abstracts the transport so the pipeline never depends on net/http directly.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// Extractor turns raw document bytes into page-ordered text spans.
// A page that yields no text contributes an empty span; failure to open
// the document at all fails the whole extraction.
type Extractor interface {
	ExtractPages(ctx context.Context, raw []byte) ([]string, error)
}

// Embedder maps a text to a fixed-length vector. Implementations own the
// input-length budget of their backend and truncate before calling out.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	Close() error
}

// VectorStore persists (id, vector, metadata) triples. Upsert with the same
// id overwrites the prior record, so repeated runs never accumulate duplicates.
type VectorStore interface {
	Upsert(ctx context.Context, records []models.StoredRecord) error
	Stats(ctx context.Context) (int64, error)
	Close() error
}

// Archive mirrors acquired artifacts to object storage. It is optional:
// a nil Archive disables mirroring, and archive failures never fail a run.
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
