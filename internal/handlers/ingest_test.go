package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"rfp-rag/internal/handlers/mocks"
	"rfp-rag/internal/indexer"
	"rfp-rag/internal/llm"
	"rfp-rag/internal/storage"
)

func ingestRouter(h *IngestHandler) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodPost, "/api/projects/{projectID}/ingest", h)
	return r
}

func TestIngestHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	ingestor := mocks.NewMockIngestor(ctrl)
	router := ingestRouter(NewIngestHandler(ingestor))

	ingestor.EXPECT().IngestProject(gomock.Any(), "p1").Return(&indexer.Result{
		ChunksInserted:     12,
		DocumentsProcessed: 2,
		DocumentsSkipped:   1,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/projects/p1/ingest", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp IngestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.InsertedCount != 12 || resp.DocumentsProcessed != 2 || resp.DocumentsSkipped != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestIngestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"project missing", storage.ErrNotFound, http.StatusNotFound},
		{"embed failure", fmt.Errorf("%w: embed: %w", indexer.ErrIngestion, llm.ErrProvider), http.StatusBadGateway},
		{"store failure", fmt.Errorf("%w: upsert failed", indexer.ErrIngestion), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ingestor := mocks.NewMockIngestor(ctrl)
			router := ingestRouter(NewIngestHandler(ingestor))

			ingestor.EXPECT().IngestProject(gomock.Any(), "p1").Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/projects/p1/ingest", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
