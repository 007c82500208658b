// pkg/health/server.go
package health

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"

	"github.com/opd-ai/go-planetwalk/pkg/logging"
)

// Server serves /metrics and the health probes over HTTP
type Server struct {
	addr       string
	registry   *prometheus.Registry
	checker    *HealthChecker
	logger     *logging.Logger
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer creates a server on addr ("host:port"). register adds the
// application's collectors to the server's private registry; it may be nil.
func NewServer(addr string, checker *HealthChecker, logger *logging.Logger, register func(prometheus.Registerer)) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if register != nil {
		register(registry)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{addr: addr, registry: registry, checker: checker, logger: logger}
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/healthz/liveness", s.checker.LivenessHandler)
	mux.HandleFunc("/healthz/readiness", s.checker.ReadinessHandler)
	return mux
}

// Start begins serving in the background. The returned channel receives a
// serve error, if any, and is closed when the server stops.
func (s *Server) Start(ctx context.Context) (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("health server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error(ctx, "health server failed", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info(ctx, "health server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.running.Store(true)
		return oops.With("operation", "shutdown_health_server").Wrap(err)
	}
	s.logger.Info(ctx, "health server stopped")
	return nil
}

// Addr returns the address the server listens on, or "" before Start
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
