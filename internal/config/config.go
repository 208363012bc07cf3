// Package config loads and finalizes the Brandforge service configuration
// from TOML files and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"brandforge/pkg/database"
	"brandforge/pkg/storage"

	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvBrandforgeEnv             = "BRANDFORGE_ENV"
	EnvBrandforgeShutdownTimeout = "BRANDFORGE_SHUTDOWN_TIMEOUT"
	EnvBrandforgeVersion         = "BRANDFORGE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "BRANDFORGE_DB_HOST",
	Port:            "BRANDFORGE_DB_PORT",
	Name:            "BRANDFORGE_DB_NAME",
	User:            "BRANDFORGE_DB_USER",
	Password:        "BRANDFORGE_DB_PASSWORD",
	SSLMode:         "BRANDFORGE_DB_SSL_MODE",
	MaxOpenConns:    "BRANDFORGE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "BRANDFORGE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "BRANDFORGE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "BRANDFORGE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "BRANDFORGE_STORAGE_CONTAINER_NAME",
	ConnectionString: "BRANDFORGE_STORAGE_CONNECTION_STRING",
	ServiceURL:       "BRANDFORGE_STORAGE_SERVICE_URL",
	MaxListSize:      "BRANDFORGE_STORAGE_MAX_LIST_SIZE",
}

// Config is the root configuration for the Brandforge service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Agent           AgentSettings   `toml:"agent"`
	API             APIConfig       `toml:"api"`
	Workflow        WorkflowConfig  `toml:"workflow"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the BRANDFORGE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBrandforgeEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		loaded, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(loaded)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(o *Config) {
	overlay(&c.ShutdownTimeout, o.ShutdownTimeout)
	overlay(&c.Version, o.Version)

	c.Server.Merge(&o.Server)
	c.Database.Merge(&o.Database)
	c.Storage.Merge(&o.Storage)
	c.Agent.Merge(&o.Agent)
	c.API.Merge(&o.API)
	c.Workflow.Merge(&o.Workflow)
}

func (c *Config) finalize() error {
	setDefault(&c.ShutdownTimeout, "30s")
	setDefault(&c.Version, "0.1.0")
	fromEnv(&c.ShutdownTimeout, EnvBrandforgeShutdownTimeout)
	fromEnv(&c.Version, EnvBrandforgeVersion)

	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name string
		fn   func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"agent", c.Agent.Finalize},
		{"api", c.API.Finalize},
		{"workflow", c.Workflow.Finalize},
	}
	for _, s := range sections {
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvBrandforgeEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
