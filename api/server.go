// Package api serves predictions from a trained artifact over HTTP.
//
// Routes:
//
//	GET  /health      static liveness response
//	POST /predict     single-row prediction
//	GET  /model_info  model type, feature order and parameters
//	GET  /metrics     Prometheus exposition
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/pkg/log"
	"github.com/YuminosukeSato/scorecast/predict"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP surface. It implements http.Handler.
type Server struct {
	loader   *predict.Loader
	logger   log.Logger
	registry *prometheus.Registry
	metrics  *serverMetrics
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for access and error logs.
func WithLogger(l log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithRegistry sets the Prometheus registry the server's collectors are
// registered with and that /metrics exposes.
func WithRegistry(r *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = r
	}
}

// New builds a Server that resolves its model through loader. The artifact
// is read on the first request that needs it.
func New(loader *predict.Loader, opts ...Option) *Server {
	s := &Server{loader: loader}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.GetLoggerWithName("api")
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newServerMetrics(s.registry)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /predict", s.handlePredict)
	mux.HandleFunc("GET /model_info", s.handleModelInfo)
	mux.Handle("GET /metrics", s.metrics.handler(s.registry))

	s.handler = chain(mux,
		s.recoverPanics,
		s.requestID,
		s.accessLog,
		s.countRequests,
	)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe listens on addr and serves until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("Server started", "addr", ln.Addr().String(), log.ModelPathKey, s.loader.Path())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	s.logger.Info("Server stopped")
	return nil
}
