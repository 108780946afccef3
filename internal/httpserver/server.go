// Package httpserver exposes the health check and Prometheus metrics.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/orgball2608/wallify-bot/internal/session"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	Config   *config.Config
	Logger   logger.Logger
	Registry *prometheus.Registry
	Sessions session.Manager
}

type Server struct {
	srv    *http.Server
	logger logger.Logger
}

func New(opts Opts) *Server {
	log := opts.Logger.WithComponent("HTTPServer")
	s := &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
			Handler:           NewRouter(log, opts.Registry, opts.Sessions),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.serve()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.srv.Shutdown(ctx)
		},
	})
	return s
}

func (s *Server) serve() {
	s.logger.Info("Starting server", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server failed", "error", err)
	}
}

func NewRouter(log logger.Logger, registry *prometheus.Registry, sessions session.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Health check request received", "method", r.Method, "active_sessions", sessions.Len())
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}
