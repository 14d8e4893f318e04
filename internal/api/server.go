package api

import (
	"log/slog"
	"net/http"

	"docindex/internal/config"
	"docindex/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docindex.
type Server struct {
	router chi.Router
	docs   *store.Store
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(docs *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		docs: docs,
		log:  log,
		cfg:  cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleCreateDocument)
		r.Get("/api/documents", s.handleListDocuments)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Get("/api/documents/{docID}/outline", s.handleOutline)
		r.Get("/api/documents/{docID}/node-ids", s.handleNodeIDs)
		r.Get("/api/documents/{docID}/nodes/{nodeID}", s.handleGetNode)
		r.Get("/api/documents/{docID}/nodes/{nodeID}/children", s.handleGetChildren)
		r.Get("/api/documents/{docID}/tree", s.handleTree)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
