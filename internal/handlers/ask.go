package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"rfp-rag/internal/contextutil"
)

// Answerer answers a question against one project's indexed documents.
// Defined from the handler's perspective; implemented by rag.Engine.
type Answerer interface {
	Answer(ctx context.Context, projectID, question string) (string, error)
}

// AskHandler handles HTTP requests for project-scoped questions.
type AskHandler struct {
	answerer Answerer
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(answerer Answerer) *AskHandler {
	return &AskHandler{answerer: answerer}
}

// AskRequest is the payload for asking a question.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse echoes the question with the generated answer.
type AskResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ServeHTTP handles POST /api/projects/{projectID}/ask.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	projectID := chi.URLParam(r, "projectID")

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "invalid request", "question is required")
		return
	}

	answer, err := h.answerer.Answer(ctx, projectID, req.Question)
	if err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	logger.InfoContext(ctx, "question answered", "project_id", projectID, "answer_length", len(answer))
	writeJSON(w, http.StatusOK, AskResponse{Question: req.Question, Answer: answer})
}
