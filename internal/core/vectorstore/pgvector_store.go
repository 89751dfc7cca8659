// Package vectorstore persists passage embeddings in Postgres with the
// pgvector extension. Records are keyed by their content-addressed id, so
// upserting the same passage twice overwrites rather than duplicates.
package vectorstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mathsnap/ingest/internal/core"
	"github.com/mathsnap/ingest/internal/models"
)

// metadataTextCap bounds the copy of the passage text stored alongside the
// vector. Truncation here is a store-side concern only.
const metadataTextCap = 1000

var tableNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type Store struct {
	db    *sql.DB
	table string
}

// New opens the database, verifies connectivity and bootstraps the schema.
func New(ctx context.Context, databaseURL, table string, dim int) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid index table name %q", table)
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := ensureBootstrapped(ctx, db, table, dim); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &Store{db: db, table: table}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Upsert writes one batch of records in a single transaction. Same-id rows
// are overwritten in place.
func (s *Store) Upsert(ctx context.Context, records []models.StoredRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`
		INSERT INTO %s (id, embedding, book, chapter, section, chunk_id, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			book = EXCLUDED.book,
			chapter = EXCLUDED.chapter,
			section = EXCLUDED.section,
			chunk_id = EXCLUDED.chunk_id,
			content = EXCLUDED.content,
			updated_at = now()
	`, s.table)

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		vec := pgvector.NewVector(r.Vector)
		if _, err := stmt.ExecContext(ctx,
			r.ID, vec, r.Metadata.Book, r.Metadata.Chapter, r.Metadata.Section,
			r.Metadata.ChunkID, CapMetadataText(r.Metadata.Text),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Stats returns the total number of stored records.
func (s *Store) Stats(ctx context.Context) (int64, error) {
	var count int64
	q := fmt.Sprintf(`SELECT count(*) FROM %s`, s.table)
	if err := s.db.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CapMetadataText truncates the stored text copy to the metadata cap.
func CapMetadataText(text string) string {
	runes := []rune(text)
	if len(runes) <= metadataTextCap {
		return text
	}
	return string(runes[:metadataTextCap])
}

var _ core.VectorStore = (*Store)(nil)
