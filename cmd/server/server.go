package main

import (
	"context"

	"brandforge/internal/config"
	"brandforge/internal/infrastructure"
)

// Server wires the infrastructure, the mounted modules, and the HTTP
// listener into a single runnable unit.
type Server struct {
	cfg   *config.Config
	infra *infrastructure.Infrastructure
	http  *httpServer
}

func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(ctx, infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
	)

	return &Server{
		cfg:   cfg,
		infra: infra,
		http:  newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Run starts every subsystem, blocks until ctx is cancelled, then drains
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	<-ctx.Done()

	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration())
}
