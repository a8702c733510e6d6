// Package web provides the HTTP server and handlers for the inventory
// dashboard.
package web

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wareroom/stockview/internal/config"
	"github.com/wareroom/stockview/internal/gateway"
	"github.com/wareroom/stockview/internal/session"
	"github.com/wareroom/stockview/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the inventory dashboard.
type Server struct {
	backend  *gateway.Client
	sessions session.Provider
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a Server wired to the backend gateway and session
// provider.
func NewServer(backend *gateway.Client, sessions session.Provider, cfg *config.Config) *Server {
	s := &Server{
		backend:  backend,
		sessions: sessions,
		cfg:      cfg,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Server.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(middleware.SecurityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatal(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public surface
	s.router.Get("/login", s.handleLogin)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	// Everything else requires a session
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(s.sessions, s.cfg.Auth.CookieName, "/login"))

		// Pages
		r.Get("/", s.handleReport)
		r.Get("/products", s.handleProducts)
		r.Get("/records", s.handleRecords)

		// Document downloads
		r.Get("/records/imports.docx", s.handleDownloadImports)
		r.Get("/records/exports.docx", s.handleDownloadExports)
	})
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
