// Package pipeline sequences the per-document ingestion stages:
// acquire -> extract -> chunk -> embed -> store. Every stage checkpoints
// its output on disk or in the vector index, so an interrupted run can be
// restarted and will neither redo completed work nor duplicate records.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mathsnap/ingest/internal/config"
	"github.com/mathsnap/ingest/internal/core"
	"github.com/mathsnap/ingest/internal/core/chunker"
	"github.com/mathsnap/ingest/internal/core/normalizer"
	"github.com/mathsnap/ingest/internal/models"
)

// Summary is the end-of-run report: how much work each phase completed and
// how many units were skipped over failures.
type Summary struct {
	RunID         string
	Downloaded    int
	Extracted     int
	Processed     int
	Passages      int
	EmbedFailures int
	BatchFailures int
	StoredRecords int64
}

// Pipeline drives one ingestion run over the catalog. It is strictly
// sequential: one book at a time, one batch at a time, so the only shared
// state is the on-disk checkpoints and the remote index.
type Pipeline struct {
	cfg       *config.Config
	books     []models.Book
	fetcher   core.Fetcher
	extractor core.Extractor
	embedder  core.Embedder
	store     core.VectorStore
	archive   core.Archive // nil disables artifact mirroring
	engine    *chunker.Engine
	limiter   *rate.Limiter
	logger    *zap.Logger
}

func New(
	cfg *config.Config,
	books []models.Book,
	fetcher core.Fetcher,
	extractor core.Extractor,
	embedder core.Embedder,
	store core.VectorStore,
	archive core.Archive,
	logger *zap.Logger,
) *Pipeline {
	limit := rate.Inf
	if cfg.EmbedDelay > 0 {
		limit = rate.Every(cfg.EmbedDelay)
	}
	return &Pipeline{
		cfg:       cfg,
		books:     books,
		fetcher:   fetcher,
		extractor: extractor,
		embedder:  embedder,
		store:     store,
		archive:   archive,
		engine: chunker.New(chunker.Config{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
			MinChunkSize: cfg.MinChunkSize,
		}),
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Run executes the three phases over the whole catalog and returns the
// summary. A failure at any one book or batch is logged and counted, never
// fatal; only context cancellation stops the run early.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	s := &Summary{RunID: uuid.New().String()}
	logger := p.logger.With(zap.String("run_id", s.RunID))

	if err := os.MkdirAll(p.pdfDir(), 0o755); err != nil {
		return s, fmt.Errorf("create data dir: %w", err)
	}

	logger.Info("starting ingestion run", zap.Int("books", len(p.books)))

	for _, book := range p.books {
		if ctx.Err() != nil {
			return s, ctx.Err()
		}
		if p.downloadOne(ctx, logger, book) {
			s.Downloaded++
		}
	}
	logger.Info("download phase complete", zap.Int("downloaded", s.Downloaded))

	for _, book := range p.books {
		if ctx.Err() != nil {
			return s, ctx.Err()
		}
		if p.extractOne(ctx, logger, book) {
			s.Extracted++
		}
	}
	logger.Info("extraction phase complete", zap.Int("extracted", s.Extracted))

	for _, book := range p.books {
		if ctx.Err() != nil {
			return s, ctx.Err()
		}
		n, err := p.processOne(ctx, logger, book, s)
		if err != nil {
			if ctx.Err() != nil {
				return s, ctx.Err()
			}
			logger.Error("processing failed", zap.String("book", book.Name), zap.Error(err))
			continue
		}
		if n > 0 {
			s.Processed++
			s.Passages += n
		}
	}

	if count, err := p.store.Stats(ctx); err != nil {
		logger.Warn("stats query failed", zap.Error(err))
		s.StoredRecords = -1
	} else {
		s.StoredRecords = count
	}

	logger.Info("ingestion run complete",
		zap.Int("downloaded", s.Downloaded),
		zap.Int("extracted", s.Extracted),
		zap.Int("processed", s.Processed),
		zap.Int("passages", s.Passages),
		zap.Int("embed_failures", s.EmbedFailures),
		zap.Int("batch_failures", s.BatchFailures),
		zap.Int64("stored_records", s.StoredRecords),
	)
	return s, nil
}

// downloadOne acquires one book's PDF. An already-present file is a
// checkpoint: it short-circuits the fetch entirely.
func (p *Pipeline) downloadOne(ctx context.Context, logger *zap.Logger, book models.Book) bool {
	pdfPath := p.pdfPath(book.Name)
	if fileExists(pdfPath) {
		logger.Debug("pdf already present", zap.String("book", book.Name))
		return true
	}

	logger.Info("downloading", zap.String("book", book.Name), zap.String("url", book.URL))
	if err := p.fetcher.Fetch(ctx, book.URL, pdfPath); err != nil {
		logger.Error("download failed", zap.String("book", book.Name), zap.Error(err))
		return false
	}

	if p.archive != nil {
		if data, err := os.ReadFile(pdfPath); err == nil {
			key := "pdfs/" + book.Name + ".pdf"
			if url, err := p.archive.Put(ctx, key, data, "application/pdf"); err != nil {
				logger.Warn("archive upload failed", zap.String("book", book.Name), zap.Error(err))
			} else {
				logger.Debug("archived", zap.String("book", book.Name), zap.String("url", url))
			}
		}
	}
	return true
}

// extractOne produces the book's full-text file. The text file is the
// checkpoint for this stage; a missing PDF means the acquire stage failed
// and the book is skipped.
func (p *Pipeline) extractOne(ctx context.Context, logger *zap.Logger, book models.Book) bool {
	textPath := p.textPath(book.Name)
	if fileExists(textPath) {
		logger.Debug("text already extracted", zap.String("book", book.Name))
		return true
	}

	pdfPath := p.pdfPath(book.Name)
	raw, err := os.ReadFile(pdfPath)
	if err != nil {
		logger.Warn("pdf not found, skipping extraction", zap.String("book", book.Name))
		return false
	}

	logger.Info("extracting text", zap.String("book", book.Name))
	pages, err := p.extractor.ExtractPages(ctx, raw)
	if err != nil {
		logger.Error("extraction failed", zap.String("book", book.Name), zap.Error(err))
		return false
	}

	nonEmpty := make([]string, 0, len(pages))
	for _, page := range pages {
		if page != "" {
			nonEmpty = append(nonEmpty, page)
		}
	}
	fullText := strings.Join(nonEmpty, "\n\n")

	if err := os.MkdirAll(filepath.Dir(textPath), 0o755); err != nil {
		logger.Error("create book dir failed", zap.String("book", book.Name), zap.Error(err))
		return false
	}
	if err := os.WriteFile(textPath, []byte(fullText), 0o644); err != nil {
		logger.Error("write text failed", zap.String("book", book.Name), zap.Error(err))
		return false
	}

	logger.Info("extracted",
		zap.String("book", book.Name),
		zap.Int("pages", len(nonEmpty)),
		zap.Int("chars", len(fullText)),
	)
	return true
}

// processOne chunks, embeds and upserts one book. A missing text file is
// "nothing to do" (the corpus may be partially populated), not an error.
// Returns the number of passages produced.
func (p *Pipeline) processOne(ctx context.Context, logger *zap.Logger, book models.Book, s *Summary) (int, error) {
	text, err := os.ReadFile(p.textPath(book.Name))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read text: %w", err)
	}

	normalized := normalizer.Normalize(string(text))
	passages := p.engine.Chunk(normalized, book.Name)
	logger.Info("chunked", zap.String("book", book.Name), zap.Int("passages", len(passages)))

	for start := 0; start < len(passages); start += p.cfg.BatchSize {
		end := start + p.cfg.BatchSize
		if end > len(passages) {
			end = len(passages)
		}

		records := make([]models.StoredRecord, 0, end-start)
		for _, passage := range passages[start:end] {
			// Cooperative backpressure against the embedding backend's
			// rate limit.
			if err := p.limiter.Wait(ctx); err != nil {
				return 0, err
			}
			vector, err := p.embedder.EmbedText(ctx, passage.Text)
			if err != nil {
				logger.Warn("embedding failed, skipping passage",
					zap.String("book", book.Name),
					zap.Int("sequence_index", passage.SequenceIndex),
					zap.Error(err),
				)
				s.EmbedFailures++
				continue
			}
			records = append(records, models.StoredRecord{
				ID:     chunker.Identity(passage),
				Vector: vector,
				Metadata: models.RecordMetadata{
					Book:    passage.Book,
					Chapter: passage.Chapter,
					Section: passage.Section,
					ChunkID: passage.SequenceIndex,
					Text:    passage.Text,
				},
			})
		}

		if len(records) == 0 {
			continue
		}
		if err := p.store.Upsert(ctx, records); err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			logger.Error("batch upsert failed",
				zap.String("book", book.Name),
				zap.Int("batch_start", start),
				zap.Error(err),
			)
			s.BatchFailures++
			continue
		}
		logger.Debug("batch upserted", zap.String("book", book.Name), zap.Int("records", len(records)))
	}

	return len(passages), nil
}

func (p *Pipeline) pdfDir() string {
	return filepath.Join(p.cfg.DataDir, "pdfs")
}

func (p *Pipeline) pdfPath(name string) string {
	return filepath.Join(p.pdfDir(), name+".pdf")
}

func (p *Pipeline) textPath(name string) string {
	return filepath.Join(p.cfg.DataDir, name, name+"_full_text.txt")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
