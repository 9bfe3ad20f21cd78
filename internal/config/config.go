package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	OpenAIBaseURL  string
	OpenAIAPIKey   string
	EmbeddingModel string
	EmbeddingDim   int
	ChatModel      string
	QdrantURL      string
	DBPath         string
	UploadDir      string
	ExportDir      string
	RetrievalK     int
	APIPort        string
	LogLevel       slog.Level
	LogFormat      string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it is loaded
// automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env next to go.mod (useful when run from cmd/api)
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		// text-embedding-3-small produces 1536-dimension vectors
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		ChatModel:      getEnv("CHAT_MODEL", "gpt-4o"),
		QdrantURL:      getEnv("QDRANT_URL", "http://localhost:6333"),
		DBPath:         getEnv("DB_PATH", "./data/rfp-rag.db"),
		UploadDir:      getEnv("UPLOAD_DIR", "./data/rfp_documents"),
		ExportDir:      getEnv("EXPORT_DIR", "./data/exports"),
		APIPort:        getEnv("API_PORT", "9000"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	dim, err := strconv.Atoi(getEnv("EMBEDDING_DIM", "1536"))
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_DIM must be a valid integer: %w", err)
	}
	if dim <= 0 {
		return nil, fmt.Errorf("EMBEDDING_DIM must be greater than 0")
	}
	cfg.EmbeddingDim = dim

	k, err := strconv.Atoi(getEnv("RETRIEVAL_K", "3"))
	if err != nil {
		return nil, fmt.Errorf("RETRIEVAL_K must be a valid integer: %w", err)
	}
	if k <= 0 {
		return nil, fmt.Errorf("RETRIEVAL_K must be greater than 0")
	}
	cfg.RetrievalK = k

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	// Create local data directories up front so first use doesn't fail
	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadDir, cfg.ExportDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
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
