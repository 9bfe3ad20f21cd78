package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

// setRequiredEnv sets the minimum environment for Load to succeed,
// pointing all local paths at a temp directory.
func setRequiredEnv(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("DB_PATH", filepath.Join(tmpDir, "test.db"))
	t.Setenv("UPLOAD_DIR", filepath.Join(tmpDir, "uploads"))
	t.Setenv("EXPORT_DIR", filepath.Join(tmpDir, "exports"))
	return tmpDir
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OpenAIBaseURL != "https://api.openai.com" {
		t.Errorf("OpenAIBaseURL = %v, want default", cfg.OpenAIBaseURL)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %v, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.EmbeddingDim != 1536 {
		t.Errorf("EmbeddingDim = %v, want 1536", cfg.EmbeddingDim)
	}
	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %v, want gpt-4o", cfg.ChatModel)
	}
	if cfg.RetrievalK != 3 {
		t.Errorf("RetrievalK = %v, want 3", cfg.RetrievalK)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for missing OPENAI_API_KEY")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric dim", "EMBEDDING_DIM", "abc"},
		{"zero dim", "EMBEDDING_DIM", "0"},
		{"negative k", "RETRIEVAL_K", "-1"},
		{"bad log level", "LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMBEDDING_DIM", "3072")
	t.Setenv("RETRIEVAL_K", "5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.EmbeddingDim != 3072 {
		t.Errorf("EmbeddingDim = %v, want 3072", cfg.EmbeddingDim)
	}
	if cfg.RetrievalK != 5 {
		t.Errorf("RetrievalK = %v, want 5", cfg.RetrievalK)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %v, want json", cfg.LogFormat)
	}
}
