// Package api exposes the slot machine to its host over HTTP. It owns the
// session registry and the journal wiring; the game math lives entirely in
// the slot package.
package api

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MJE43/haunted-slots-go/internal/slot"
	"github.com/MJE43/haunted-slots-go/internal/store"
)

// Server handles HTTP requests.
type Server struct {
	cfg       slot.Config
	sessions  *SessionManager
	journal   *store.Journal // nil disables journaling
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates an API server. journal may be nil to run without the
// audit log.
func NewServer(cfg slot.Config, journal *store.Journal) *Server {
	return &Server{
		cfg:       cfg,
		sessions:  NewSessionManager(),
		journal:   journal,
		logger:    log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile),
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/sessions/{id}/spin", s.handleSpin)
		r.Get("/sessions/{id}/spins", s.handleSessionSpins)
	})

	return r
}
