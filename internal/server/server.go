// Package server exposes the analysis engine over HTTP for editor
// integrations and CI runners that keep a warm process.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/solguard-labs/solguard/internal/engine"
	"github.com/solguard-labs/solguard/pkg/lint"
)

// Config holds the server's collaborators.
type Config struct {
	Engine  *engine.Engine
	Catalog *lint.Catalog

	// Extra rules are plugin rules included in rule listings.
	Extra []lint.Rule

	Addr   string
	Logger *slog.Logger
}

// Server wraps the engine with a REST transport.
type Server struct {
	engine  *engine.Engine
	catalog *lint.Catalog
	extra   []lint.Rule
	addr    string
	logger  *slog.Logger
}

// New creates a server. The engine and catalog are required.
func New(cfg Config) (*Server, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("server: engine is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("server: catalog is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:  cfg.Engine,
		catalog: cfg.Catalog,
		extra:   cfg.Extra,
		addr:    cfg.Addr,
		logger:  logger,
	}, nil
}

// Routes builds the HTTP handler. Exposed separately so tests can drive it
// with httptest.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/rules", s.handleRules)
	})
	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting analysis server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down analysis server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
