// Package api exposes the reasoning pipeline over HTTP.
package api

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/casetrace/casetrace/internal/auth"
	"github.com/casetrace/casetrace/internal/monitor"
	"github.com/casetrace/casetrace/internal/reasoning"
	"github.com/casetrace/casetrace/internal/storage"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      string
	JWTSecret string
	DB        *sql.DB
	// Monitor mirrors created analyses to the session-monitoring service
	// when set. Optional; mirroring failures never fail the request.
	Monitor *monitor.Client
}

// Server wires the router, services, and repositories together.
type Server struct {
	config      ServerConfig
	router      *chi.Mux
	authService auth.Service
	reasoner    *reasoning.Reasoner
	analyses    storage.AnalysisRepository
	monitor     *monitor.Client
}

// NewServer creates a fully routed server.
func NewServer(config ServerConfig) *Server {
	authConfig := auth.DefaultConfig()
	if config.JWTSecret != "" {
		authConfig.SecretKey = config.JWTSecret
	}

	s := &Server{
		config:      config,
		router:      chi.NewRouter(),
		authService: auth.NewJWTService(authConfig, auth.NewPostgresRepository(config.DB)),
		reasoner:    reasoning.NewReasoner(reasoning.DefaultConfig()),
		analyses:    storage.NewPostgresAnalysisRepository(config.DB),
		monitor:     config.Monitor,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.authService))
			r.Post("/analyses", s.handleCreateAnalysis)
			r.Get("/analyses", s.handleListAnalyses)
			r.Get("/analyses/{id}", s.handleGetAnalysis)
			r.Get("/analyses/{id}/report", s.handleGetReport)
			r.Delete("/analyses/{id}", s.handleDeleteAnalysis)
		})
	})
}

// Handler returns the router for serving and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := ":" + s.config.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("listening on %s", addr)
	return server.ListenAndServe()
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
