package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Object store connection
	BlobstoreURL    string
	BlobstoreAPIKey string

	// Vector index connection
	IndexURL        string
	IndexAPIKey     string
	IndexCollection string

	// Auth
	ServiceAPIKey string

	// Worker pool
	WorkerCount       int
	MaxQueueSize      int
	MaxConcurrentDocs int

	// Upload limits
	MaxUploadBytes int64

	// Chunking budgets
	SectionChunkTokens int
	TableChunkTokens   int

	// Comprehensive-concept keywords (the enumerable item names)
	ConceptKeywords []string

	// Store prefix for incremental runs
	StorePrefix string

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

// defaultConceptKeywords are the named items of the designated
// comprehensive concept; override with CONCEPT_KEYWORDS.
var defaultConceptKeywords = []string{
	"HUMBLE", "CUSTOMER FOCUSED", "EMPLOYEE SATISFACTION",
	"SPEED", "PASSION", "INTEGRITY", "DISCIPLINE",
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		BlobstoreURL:    envOr("BLOBSTORE_URL", "http://localhost:8080"),
		BlobstoreAPIKey: os.Getenv("BLOBSTORE_API_KEY"),

		IndexURL:        envOr("INDEX_URL", "http://localhost:6333"),
		IndexAPIKey:     os.Getenv("INDEX_API_KEY"),
		IndexCollection: envOr("INDEX_COLLECTION", "documents"),

		ServiceAPIKey: os.Getenv("SERVICE_API_KEY"),

		WorkerCount:       envInt("WORKER_COUNT", 4),
		MaxQueueSize:      envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentDocs: envInt("MAX_CONCURRENT_DOCS", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		SectionChunkTokens: envInt("SECTION_CHUNK_TOKENS", 3500),
		TableChunkTokens:   envInt("TABLE_CHUNK_TOKENS", 5000),

		ConceptKeywords: envList("CONCEPT_KEYWORDS", defaultConceptKeywords),

		StorePrefix: envOr("STORE_PREFIX", "sop/"),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentDocs <= 0 {
		cfg.MaxConcurrentDocs = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.SectionChunkTokens <= 0 {
		cfg.SectionChunkTokens = 3500
	}
	if cfg.TableChunkTokens <= 0 {
		cfg.TableChunkTokens = 5000
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ServiceAPIKey == "" {
		return fmt.Errorf("SERVICE_API_KEY is required")
	}
	if c.BlobstoreURL == "" {
		return fmt.Errorf("BLOBSTORE_URL is required")
	}
	if c.IndexURL == "" {
		return fmt.Errorf("INDEX_URL is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
