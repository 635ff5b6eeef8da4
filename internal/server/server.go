// Package server exposes spectrum validation and decoding over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /v1/formats
//	POST /v1/validate/{format}?delimiter=&columns=
//	POST /v1/decode/{format}?delimiter=&columns=
//
// The request body is the file itself. A Content-Encoding of gzip, zstd,
// s2 or lz4 is decompressed before decoding.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/simonhull/spectra"
	"github.com/simonhull/spectra/internal/config"
)

// Server is the spectrum acceptance gateway.
type Server struct {
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
	limiter *limiter

	delimiter rune
	columns   spectra.ColumnMode
}

// New creates a Server from validated configuration.
func New(cfg *config.Config) (*Server, error) {
	delim, err := spectra.ParseDelimiter(cfg.Decode.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("default delimiter: %w", err)
	}
	columns, err := spectra.ParseColumnMode(cfg.Decode.Columns)
	if err != nil {
		return nil, fmt.Errorf("default column mode: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		router:    chi.NewRouter(),
		limiter:   newLimiter(cfg.Decode.MaxConcurrent, cfg.Decode.MaxWait),
		delimiter: delim,
		columns:   columns,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/validate/{format}", s.handleValidate)
		r.Post("/decode/{format}", s.handleDecode)
	})
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start begins listening for HTTP requests. It returns http.ErrServerClosed
// after Shutdown.
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

// Shutdown stops accepting requests, then waits for running decodes.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	if st := s.limiter.status(); st.Active > 0 {
		slog.Info("waiting for decodes to complete", "active", st.Active)
	}
	return s.limiter.drain(ctx)
}
