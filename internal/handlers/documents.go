package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rfp-rag/internal/contextutil"
	"rfp-rag/internal/filestore"
	"rfp-rag/internal/storage"
)

// 32 MiB multipart memory budget; larger files spill to temp files
const maxUploadMemory = 32 << 20

// DocumentHandler handles uploads and listing of RFP source documents.
type DocumentHandler struct {
	projectRepo  storage.ProjectStore
	documentRepo storage.DocumentStore
	files        *filestore.Store
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(projectRepo storage.ProjectStore, documentRepo storage.DocumentStore, files *filestore.Store) *DocumentHandler {
	return &DocumentHandler{
		projectRepo:  projectRepo,
		documentRepo: documentRepo,
		files:        files,
	}
}

// DocumentResponse is the JSON shape of an uploaded document.
type DocumentResponse struct {
	FileID     string `json:"file_id"`
	ProjectID  string `json:"project_id"`
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	UploadedAt string `json:"uploaded_at"`
}

func documentResponse(d *storage.DocumentRecord) DocumentResponse {
	return DocumentResponse{
		FileID:     d.FileID,
		ProjectID:  d.ProjectID,
		Filename:   d.Filename,
		FileType:   d.FileType,
		UploadedAt: d.UploadedAt.UTC().Format(time.RFC3339),
	}
}

// Upload handles POST /api/projects/{projectID}/documents. The multipart
// field is named "file". Any extension is accepted at upload time; formats
// outside the extractable set are skipped during ingestion instead.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	projectID := chi.URLParam(r, "projectID")

	if _, err := h.projectRepo.GetByID(ctx, projectID); err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "malformed multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "missing form file \"file\"")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if ext == "" {
		writeError(w, http.StatusBadRequest, "invalid request", "uploaded file has no extension")
		return
	}
	name := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))

	fileID := uuid.New().String()
	storagePath, err := h.files.Save(fileID, ext, file)
	if err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	doc := &storage.DocumentRecord{
		FileID:      fileID,
		ProjectID:   projectID,
		Filename:    name,
		FileType:    ext,
		StoragePath: storagePath,
		UploadedAt:  time.Now().UTC(),
	}
	if err := h.documentRepo.Insert(ctx, doc); err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	logger.InfoContext(ctx, "document uploaded",
		"project_id", projectID, "file_id", fileID, "file_type", ext, "size", header.Size)
	writeJSON(w, http.StatusCreated, documentResponse(doc))
}

// List handles GET /api/projects/{projectID}/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := chi.URLParam(r, "projectID")

	if _, err := h.projectRepo.GetByID(ctx, projectID); err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	docs, err := h.documentRepo.ListByProject(ctx, projectID)
	if err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		resp = append(resp, documentResponse(&docs[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}
