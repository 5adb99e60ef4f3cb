package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Embedding sources selectable with EMBEDDING_SOURCE.
const (
	EmbeddingSourceSQLite = "sqlite"
	EmbeddingSourceQdrant = "qdrant"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL          string
	LLMModelName        string
	LLMAPIKey           string
	LLMTimeout          time.Duration
	LLMRateLimit        float64 // requests per second; 0 disables limiting
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int
	EmbeddingSource     string
	DBPath              string
	APIPort             string
	QdrantURL           string // empty disables the Qdrant mirror
	QdrantCollection    string
	ChunkSize           int
	ChunkOverlap        int
	LogLevel            slog.Level
	LogFormat           string
}

// QdrantEnabled reports whether embeddings are mirrored to Qdrant.
func (c *Config) QdrantEnabled() bool {
	return c.QdrantURL != ""
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	// Walk up to find a .env at the project root
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		EmbeddingSource:    strings.ToLower(getEnv("EMBEDDING_SOURCE", EmbeddingSourceSQLite)),
		DBPath:             getEnv("DB_PATH", "./data/casebrief.db"),
		APIPort:            getEnv("API_PORT", "9000"),
		QdrantURL:          getEnv("QDRANT_URL", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "case_chunks"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	// EMBEDDING_VECTOR_SIZE must match the output size of the embeddings model.
	// If it changes, the Qdrant collection must be recreated.
	vectorSizeStr := getEnv("EMBEDDING_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE is required")
	}
	if cfg.EmbeddingVectorSize, err = positiveInt("EMBEDDING_VECTOR_SIZE", vectorSizeStr); err != nil {
		return nil, err
	}

	if cfg.ChunkSize, err = positiveInt("CHUNK_SIZE", getEnv("CHUNK_SIZE", "800")); err != nil {
		return nil, err
	}
	cfg.ChunkOverlap, err = strconv.Atoi(getEnv("CHUNK_OVERLAP", "100"))
	if err != nil {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be a valid integer: %w", err)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be between 0 and CHUNK_SIZE-1")
	}

	if cfg.LLMTimeout, err = time.ParseDuration(getEnv("LLM_TIMEOUT", "60s")); err != nil {
		return nil, fmt.Errorf("LLM_TIMEOUT must be a valid duration: %w", err)
	}
	if cfg.LLMRateLimit, err = strconv.ParseFloat(getEnv("LLM_RATE_LIMIT", "0"), 64); err != nil || cfg.LLMRateLimit < 0 {
		return nil, fmt.Errorf("LLM_RATE_LIMIT must be a non-negative number")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json")
	}

	switch cfg.EmbeddingSource {
	case EmbeddingSourceSQLite:
	case EmbeddingSourceQdrant:
		if !cfg.QdrantEnabled() {
			return nil, fmt.Errorf("QDRANT_URL is required when EMBEDDING_SOURCE is qdrant")
		}
	default:
		return nil, fmt.Errorf("EMBEDDING_SOURCE must be sqlite or qdrant")
	}

	// Create the data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func positiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}
