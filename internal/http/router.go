package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rfp-rag/internal/filestore"
	"rfp-rag/internal/handlers"
	"rfp-rag/internal/service"
	"rfp-rag/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB           *sql.DB
	ProjectRepo  storage.ProjectStore
	DocumentRepo storage.DocumentStore
	Files        *filestore.Store
	Ingestor     handlers.Ingestor
	Answerer     handlers.Answerer
	Builder      handlers.DocumentBuilder
	ChatService  service.ChatService
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	projectHandler := handlers.NewProjectHandler(deps.ProjectRepo)
	documentHandler := handlers.NewDocumentHandler(deps.ProjectRepo, deps.DocumentRepo, deps.Files)
	ingestHandler := handlers.NewIngestHandler(deps.Ingestor)
	askHandler := handlers.NewAskHandler(deps.Answerer)
	rfpDocHandler := handlers.NewRFPDocumentHandler(deps.Builder)
	chatHandler := handlers.NewChatHandler(deps.ChatService)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodPost, "/chat", chatHandler)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectHandler.Create)
			r.Get("/", projectHandler.List)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", projectHandler.Get)
				r.Patch("/stage", projectHandler.UpdateStage)
				r.Post("/documents", documentHandler.Upload)
				r.Get("/documents", documentHandler.List)
				r.Method(http.MethodPost, "/ingest", ingestHandler)
				r.Method(http.MethodPost, "/ask", askHandler)
				r.Method(http.MethodPost, "/rfp-document", rfpDocHandler)
			})
		})
	})

	return r
}
