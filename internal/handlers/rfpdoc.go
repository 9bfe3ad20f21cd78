package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rfp-rag/internal/assembler"
	"rfp-rag/internal/contextutil"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DocumentBuilder assembles the RFP response document for one project.
// Defined from the handler's perspective; implemented by assembler.Assembler.
type DocumentBuilder interface {
	BuildDocument(ctx context.Context, projectID string) (*assembler.Document, error)
}

// RFPDocumentHandler handles HTTP requests to generate the RFP response .docx.
type RFPDocumentHandler struct {
	builder DocumentBuilder
}

// NewRFPDocumentHandler creates a new RFPDocumentHandler.
func NewRFPDocumentHandler(builder DocumentBuilder) *RFPDocumentHandler {
	return &RFPDocumentHandler{builder: builder}
}

// ServeHTTP handles POST /api/projects/{projectID}/rfp-document. The rendered
// bytes are always the response body; a failed export write is reported via
// the X-Export-Failed header, not a failed request.
func (h *RFPDocumentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	projectID := chi.URLParam(r, "projectID")

	doc, err := h.builder.BuildDocument(ctx, projectID)
	if err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	if doc.PersistErr != nil {
		w.Header().Set("X-Export-Failed", "true")
	}
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(doc.Content); err != nil {
		logger.ErrorContext(ctx, "failed to write document response", "error", err)
		return
	}

	logger.InfoContext(ctx, "rfp document served",
		"project_id", projectID,
		"filename", doc.Filename,
		"bytes", len(doc.Content),
		"persisted", doc.PersistErr == nil)
}
