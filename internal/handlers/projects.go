package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rfp-rag/internal/contextutil"
	"rfp-rag/internal/storage"
)

// ProjectHandler handles HTTP requests for RFP projects.
type ProjectHandler struct {
	projectRepo storage.ProjectStore
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectRepo storage.ProjectStore) *ProjectHandler {
	return &ProjectHandler{projectRepo: projectRepo}
}

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Stage       string `json:"stage"`
	DueDate     string `json:"due_date"` // 2006-01-02
	Value       int64  `json:"value"`
}

// UpdateStageRequest is the payload for moving a project through the pipeline.
type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

// ProjectResponse is the JSON shape of a project.
type ProjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Stage       string `json:"stage"`
	DueDate     string `json:"due_date,omitempty"`
	Value       int64  `json:"value"`
	CreatedAt   string `json:"created_at"`
}

func projectResponse(p *storage.ProjectRecord) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		Stage:       p.Stage,
		Value:       p.Value,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !p.DueDate.IsZero() {
		resp.DueDate = p.DueDate.Format("2006-01-02")
	}
	return resp
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid request", "name is required")
		return
	}

	stage := req.Stage
	if stage == "" {
		stage = storage.StageProspect
	}
	if !storage.ValidStage(stage) {
		writeError(w, http.StatusBadRequest, "invalid request", fmt.Sprintf("unknown stage %q", stage))
		return
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request", "due_date must be YYYY-MM-DD")
			return
		}
		dueDate = parsed
	}

	project := &storage.ProjectRecord{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Stage:       stage,
		DueDate:     dueDate,
		Value:       req.Value,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.projectRepo.Insert(ctx, project); err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	logger.InfoContext(ctx, "project created", "project_id", project.ID, "name", project.Name)
	writeJSON(w, http.StatusCreated, projectResponse(project))
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.projectRepo.ListAll(ctx)
	if err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, projectResponse(&projects[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/projects/{projectID}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, err := h.projectRepo.GetByID(ctx, chi.URLParam(r, "projectID"))
	if err != nil {
		writeDomainError(w, ctx, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(project))
}

// UpdateStage handles PATCH /api/projects/{projectID}/stage.
func (h *ProjectHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	projectID := chi.URLParam(r, "projectID")

	var req UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}
	if !storage.ValidStage(req.Stage) {
		writeError(w, http.StatusBadRequest, "invalid request", fmt.Sprintf("unknown stage %q", req.Stage))
		return
	}

	if err := h.projectRepo.UpdateStage(ctx, projectID, req.Stage); err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	logger.InfoContext(ctx, "project stage updated", "project_id", projectID, "stage", req.Stage)
	project, err := h.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		writeDomainError(w, ctx, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(project))
}
