package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"brandforge/internal/config"
	"brandforge/pkg/lifecycle"
)

// httpServer wraps http.Server with lifecycle-driven graceful shutdown.
type httpServer struct {
	inner        *http.Server
	logger       *slog.Logger
	drainTimeout time.Duration
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	return &httpServer{
		inner: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
		},
		logger:       logger.With("system", "http"),
		drainTimeout: cfg.ShutdownTimeoutDuration(),
	}
}

// Start begins serving immediately and registers a shutdown hook that
// drains in-flight requests up to the configured timeout.
func (s *httpServer) Start(lc *lifecycle.Coordinator) error {
	go func() {
		s.logger.Info("server listening", "addr", s.inner.Addr)

		err := s.inner.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.drain()
	})

	return nil
}

func (s *httpServer) drain() {
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.drainTimeout)
	defer cancel()

	if err := s.inner.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown error", "error", err)
		return
	}
	s.logger.Info("server shutdown complete")
}
