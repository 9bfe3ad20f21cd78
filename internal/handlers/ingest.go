package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_core.go -package=mocks rfp-rag/internal/handlers Ingestor,Answerer,DocumentBuilder

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rfp-rag/internal/contextutil"
	"rfp-rag/internal/indexer"
)

// Ingestor runs the document ingestion pipeline for one project.
// Defined from the handler's perspective; implemented by indexer.Pipeline.
type Ingestor interface {
	IngestProject(ctx context.Context, projectID string) (*indexer.Result, error)
}

// IngestHandler handles HTTP requests to (re)index a project's documents.
type IngestHandler struct {
	ingestor Ingestor
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestor Ingestor) *IngestHandler {
	return &IngestHandler{ingestor: ingestor}
}

// IngestResponse reports what one ingestion run did.
type IngestResponse struct {
	InsertedCount      int `json:"inserted_count"`
	DocumentsProcessed int `json:"documents_processed"`
	DocumentsSkipped   int `json:"documents_skipped"`
}

// ServeHTTP handles POST /api/projects/{projectID}/ingest.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	projectID := chi.URLParam(r, "projectID")

	result, err := h.ingestor.IngestProject(ctx, projectID)
	if err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	logger.InfoContext(ctx, "ingestion finished",
		"project_id", projectID,
		"inserted_count", result.ChunksInserted,
		"documents_processed", result.DocumentsProcessed,
		"documents_skipped", result.DocumentsSkipped)

	writeJSON(w, http.StatusOK, IngestResponse{
		InsertedCount:      result.ChunksInserted,
		DocumentsProcessed: result.DocumentsProcessed,
		DocumentsSkipped:   result.DocumentsSkipped,
	})
}
