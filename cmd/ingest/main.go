package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mathsnap/ingest/internal/catalog"
	"github.com/mathsnap/ingest/internal/config"
	"github.com/mathsnap/ingest/internal/core"
	"github.com/mathsnap/ingest/internal/core/extractor"
	"github.com/mathsnap/ingest/internal/core/fetcher"
	"github.com/mathsnap/ingest/internal/core/llm"
	"github.com/mathsnap/ingest/internal/core/objectstore"
	"github.com/mathsnap/ingest/internal/core/pipeline"
	"github.com/mathsnap/ingest/internal/core/vectorstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	books, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}

	store, err := vectorstore.New(ctx, cfg.DatabaseURL, cfg.IndexTable, cfg.EmbedDim)
	if err != nil {
		logger.Fatal("init vector store", zap.Error(err))
	}
	defer store.Close()

	embedder, err := llm.NewGeminiEmbedder(ctx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		logger.Fatal("init embedder", zap.Error(err))
	}
	defer embedder.Close()

	// The S3 archive is optional; a run without AWS credentials just
	// keeps artifacts locally.
	var archive core.Archive
	if a, err := objectstore.NewS3Archive(ctx, cfg); err != nil {
		logger.Info("artifact archiving disabled", zap.String("reason", err.Error()))
	} else {
		archive = a
	}

	p := pipeline.New(
		cfg,
		books,
		fetcher.NewHTTPFetcher(30*time.Second),
		extractor.NewDocconvExtractor(false),
		embedder,
		store,
		archive,
		logger,
	)

	summary, err := p.Run(ctx)
	if err != nil {
		logger.Error("run interrupted", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("knowledge base ready",
		zap.Int("books_processed", summary.Processed),
		zap.Int64("stored_records", summary.StoredRecords),
	)
}
