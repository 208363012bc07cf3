// Package database wraps a PostgreSQL connection pool behind the
// application lifecycle: the pool is configured up front, pinged during
// startup, and closed on shutdown.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"brandforge/pkg/lifecycle"
)

// System exposes the pool and hooks it into lifecycle coordination.
type System interface {
	// Connection returns the underlying pool.
	Connection() *sql.DB
	// Start registers the startup ping and shutdown close with lc.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
}

// New opens the pool from cfg and applies its sizing limits. sql.Open
// validates the DSN only; no connection is made until Start runs the
// startup ping.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:        db,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection")

	lc.OnStartup(func() { d.ping(lc.Context()) })
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.close()
	})

	return nil
}

// ping verifies the pool can reach the server within the connect timeout.
func (d *database) ping(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, d.connTimeout)
	defer cancel()

	if err := d.conn.PingContext(ctx); err != nil {
		d.logger.Error("database ping failed", "error", err)
		return
	}
	d.logger.Info("database connection established")
}

func (d *database) close() {
	d.logger.Info("closing database connection")

	if err := d.conn.Close(); err != nil {
		d.logger.Error("database close failed", "error", err)
		return
	}
	d.logger.Info("database connection closed")
}
