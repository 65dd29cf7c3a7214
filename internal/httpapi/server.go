// Package httpapi exposes the pull service over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xtding233/gacha-server/internal/banner"
	"github.com/xtding233/gacha-server/internal/metrics"
	"github.com/xtding233/gacha-server/internal/pull"
	"github.com/xtding233/gacha-server/internal/response"
)

// Deps are the components the HTTP surface calls into.
type Deps struct {
	Registry *banner.Registry
	Composer *response.Composer
	Pulls    *pull.Service
	Reload   func(ctx context.Context) error // POST /admin/reload
	Ready    func(ctx context.Context) error // optional extra readiness check
}

// Server is the HTTP adapter.
type Server struct {
	registry *banner.Registry
	composer *response.Composer
	pulls    *pull.Service
	reload   func(ctx context.Context) error
	ready    func(ctx context.Context) error

	router     chi.Router
	httpServer *http.Server
}

// NewServer builds the router and an http.Server listening on addr.
func NewServer(addr string, d Deps) (*Server, error) {
	if d.Registry == nil || d.Composer == nil || d.Pulls == nil {
		return nil, errors.New("httpapi: registry, composer and pull service are required")
	}
	s := &Server{
		registry: d.Registry,
		composer: d.Composer,
		pulls:    d.Pulls,
		reload:   d.Reload,
		ready:    d.Ready,
	}
	if s.reload == nil {
		s.reload = func(context.Context) error { return fmt.Errorf("reload not configured") }
	}

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(requestLogging)

	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/banners", s.handleListBanners)
	r.Route("/players/{playerID}", func(r chi.Router) {
		r.Post("/pulls", s.handlePull)
		r.Get("/pity", s.handlePity)
	})
	r.Post("/admin/reload", s.handleReload)

	s.router = r
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until Stop is called.
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
