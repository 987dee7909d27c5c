// Package web provides the HTTP server and JSON handlers for the catalog
// and auth APIs, mounted under /api/v1 and consumed by a separate SPA.
package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/flexnit/flexnit/internal/auth"
	"github.com/flexnit/flexnit/internal/catalog"
	"github.com/flexnit/flexnit/internal/config"
	mw "github.com/flexnit/flexnit/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the catalog application.
type Server struct {
	cfg      *config.Config
	catalog  *catalog.Service
	auth     *auth.Service
	sessions *auth.Sessions
	router   *chi.Mux
	server   *http.Server
}

// NewServer wires the services into a configured router.
func NewServer(cfg *config.Config, catalogSvc *catalog.Service, authSvc *auth.Service, sessions *auth.Sessions) *Server {
	s := &Server{
		cfg:      cfg,
		catalog:  catalogSvc,
		auth:     authSvc,
		sessions: sessions,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(mw.CORS(s.cfg.Server.AllowedOrigins))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
		})

		r.Route("/shows", func(r chi.Router) {
			r.Use(mw.RequireAuth(s.sessions))
			r.Post("/import", s.handleImport)
			r.Get("/", s.handleListShows)
			r.Get("/{id}", s.handleGetShow)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
