package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dataqc/internal/analysis"
	"dataqc/ports"
)

// Server exposes the analysis engine and rule management over JSON. It
// renders no HTML; reporting and visualization are external consumers of the
// structured result.
type Server struct {
	router   *chi.Mux
	analyzer *analysis.Analyzer
	rules    ports.RuleRepository
}

// NewServer creates a server wired to an analyzer and a rule store
func NewServer(analyzer *analysis.Analyzer, rules ports.RuleRepository) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		analyzer: analyzer,
		rules:    rules,
	}
	s.routes()
	return s
}

// Router returns the configured chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", s.handleListRules)
			r.Post("/", s.handleCreateRule)
			r.Route("/{ruleID}", func(r chi.Router) {
				r.Get("/", s.handleGetRule)
				r.Put("/", s.handleUpdateRule)
				r.Delete("/", s.handleDeleteRule)
				r.Post("/toggle", s.handleToggleRule)
			})
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON renders a JSON response, logging encode failures
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

// writeError renders a structured error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
