package console

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freshmart/admin-console/pkg/logger"
)

// OpsServer exposes the console's own health and metrics endpoints on a
// local listener, separate from the backend it talks to.
type OpsServer struct {
	server *http.Server
	logg   *logger.Logger
}

// NewOpsServer builds the ops listener. registry may be the gatherer the
// console's metrics are registered on.
func NewOpsServer(addr string, registry *prometheus.Registry, logg *logger.Logger) *OpsServer {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return &OpsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logg: logg,
	}
}

// Start serves in a background goroutine until Shutdown.
func (s *OpsServer) Start(ctx context.Context) {
	go func() {
		s.logg.Info(s.logg.WithField(ctx, "addr", s.server.Addr), "ops server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logg.Error(ctx, "ops server failed", err)
		}
	}()
}

// Shutdown drains the listener.
func (s *OpsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the route tree for tests.
func (s *OpsServer) Handler() http.Handler {
	return s.server.Handler
}
