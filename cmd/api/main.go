package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"rfp-rag/internal/assembler"
	"rfp-rag/internal/config"
	"rfp-rag/internal/filestore"
	"rfp-rag/internal/http"
	"rfp-rag/internal/indexer"
	"rfp-rag/internal/llm"
	"rfp-rag/internal/rag"
	"rfp-rag/internal/service"
	"rfp-rag/internal/storage"
	"rfp-rag/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	projectRepo := storage.NewProjectRepo(db)
	documentRepo := storage.NewDocumentRepo(db)
	qaRepo := storage.NewQARepo(db)

	// Uploaded-document file store
	files := filestore.New(cfg.UploadDir)

	// Initialize Qdrant vector store. Per-project collections are created
	// lazily on ingest and ask.
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	slog.Info("Qdrant client initialized", "url", cfg.QdrantURL, "vector_size", cfg.EmbeddingDim)

	// LLM clients (shared across all projects)
	embedder := llm.NewEmbeddingsClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDim)
	generator := llm.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.ChatModel)

	// Core components
	pipeline := indexer.NewPipeline(projectRepo, documentRepo, files, embedder, vectorStore, cfg.EmbeddingDim)
	engine := rag.NewEngine(projectRepo, qaRepo, embedder, generator, vectorStore, cfg.EmbeddingDim, cfg.RetrievalK)
	docAssembler := assembler.New(projectRepo, qaRepo, generator, cfg.ExportDir)
	chatService := service.NewChatService(generator)
	slog.Info("Core components initialized", "retrieval_k", cfg.RetrievalK)

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		DB:           db,
		ProjectRepo:  projectRepo,
		DocumentRepo: documentRepo,
		Files:        files,
		Ingestor:     pipeline,
		Answerer:     engine,
		Builder:      docAssembler,
		ChatService:  chatService,
	})

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.OpenAIBaseURL, "chat_model", cfg.ChatModel, "embedding_model", cfg.EmbeddingModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
