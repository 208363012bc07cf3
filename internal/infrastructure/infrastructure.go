// Package infrastructure assembles the shared systems that domain modules
// depend on: lifecycle coordination, logging, database access, blob storage,
// and the agent configuration handed to the workflow runner.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"brandforge/internal/config"
	"brandforge/pkg/database"
	"brandforge/pkg/lifecycle"
	"brandforge/pkg/storage"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const envLogFormat = "BRANDFORGE_LOG_FORMAT"

// Infrastructure is the single initialization point for the systems shared
// across domain modules. Systems are constructed by New and registered with
// the lifecycle coordinator by Start.
type Infrastructure struct {
	Agent     gaconfig.AgentConfig
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// newLogger builds the root logger; BRANDFORGE_LOG_FORMAT=json switches
// from text to JSON output for log aggregation.
func newLogger(version string) *slog.Logger {
	var handler slog.Handler
	if os.Getenv(envLogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	return slog.New(handler).With("service", "brandforge", "version", version)
}

// New constructs all infrastructure systems from the application
// configuration without starting them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := newLogger(cfg.Version)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Agent:     cfg.Agent.AgentConfig(),
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers the database and storage hooks with the lifecycle
// coordinator so they participate in startup and shutdown.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
