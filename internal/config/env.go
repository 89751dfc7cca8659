package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every knob of one pipeline run. Chunking constants live here
// (not in package-level globals) so tests can inject arbitrary sizes.
type Config struct {
	DatabaseURL string
	IndexTable  string

	AIAPIKey   string
	EmbedModel string
	EmbedDim   int

	DataDir     string
	CatalogPath string

	ChunkSize    int
	ChunkOverlap int
	MinChunkSize int

	BatchSize  int
	EmbedDelay time.Duration

	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string
}

// LoadConfig loads the environment variables and returns the run config.
// Missing prerequisites are fatal: no stage can complete without them,
// so the run aborts before doing any work.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		IndexTable:  getEnv("INDEX_TABLE", "textbook_passages"),

		AIAPIKey:   getEnv("GEMINI_API_KEY", ""),
		EmbedModel: getEnv("EMBED_MODEL", "text-embedding-004"),
		EmbedDim:   getEnvInt("EMBED_DIM", 768),

		DataDir:     getEnv("DATA_DIR", "scraped_data"),
		CatalogPath: getEnv("CATALOG_PATH", ""),

		ChunkSize:    getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 200),
		MinChunkSize: getEnvInt("MIN_CHUNK_SIZE", 300),

		BatchSize:  getEnvInt("BATCH_SIZE", 100),
		EmbedDelay: time.Duration(getEnvInt("EMBED_DELAY_MS", 100)) * time.Millisecond,

		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-2"),
		BucketName:   getEnv("BUCKET_NAME", ""),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if cfg.AIAPIKey == "" {
		log.Fatal("GEMINI_API_KEY not set")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
