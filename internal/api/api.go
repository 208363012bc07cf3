// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"brandforge/internal/config"
	"brandforge/internal/infrastructure"
	"brandforge/pkg/middleware"
	"brandforge/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The context is used for OIDC provider discovery when auth is enabled.
func NewModule(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	auth, err := middleware.OIDC(ctx, &cfg.API.Auth, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("auth middleware: %w", err)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(auth)
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
