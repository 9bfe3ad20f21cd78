package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"rfp-rag/internal/assembler"
	"rfp-rag/internal/contextutil"
	"rfp-rag/internal/indexer"
	"rfp-rag/internal/llm"
	"rfp-rag/internal/service"
	"rfp-rag/internal/storage"
	"rfp-rag/internal/vectorstore"
)

// ErrorResponse is the JSON body for every error status.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, ErrorResponse{Error: message, Detail: detail})
}

// writeDomainError maps sentinel errors from the core packages to HTTP
// statuses. Anything unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	var vErr *service.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "invalid request", vErr.Error())
	case errors.Is(err, indexer.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "unsupported document format", err.Error())
	case errors.Is(err, assembler.ErrNoQAHistory):
		writeError(w, http.StatusConflict, "no usable QA history", err.Error())
	case errors.Is(err, vectorstore.ErrDimensionMismatch), errors.Is(err, llm.ErrDimensionMismatch):
		logger.ErrorContext(ctx, "vector dimension mismatch", "error", err)
		writeError(w, http.StatusServiceUnavailable, "vector index misconfigured", err.Error())
	case errors.Is(err, llm.ErrProvider):
		logger.ErrorContext(ctx, "llm provider failure", "error", err)
		writeError(w, http.StatusBadGateway, "model provider failure", err.Error())
	case errors.Is(err, indexer.ErrIngestion):
		logger.ErrorContext(ctx, "ingestion failure", "error", err)
		writeError(w, http.StatusBadGateway, "ingestion failed", err.Error())
	default:
		logger.ErrorContext(ctx, "internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
