package config

import (
	"fmt"
	"time"
)

const (
	EnvServerHost            = "BRANDFORGE_SERVER_HOST"
	EnvServerPort            = "BRANDFORGE_SERVER_PORT"
	EnvServerReadTimeout     = "BRANDFORGE_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "BRANDFORGE_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "BRANDFORGE_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds the HTTP listener settings. Timeouts are duration
// strings so TOML and env overrides share one format.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// Addr renders the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Finalize fills unset fields with defaults, applies env overrides, then
// validates the result.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge copies non-zero fields from overlay into c.
func (c *ServerConfig) Merge(o *ServerConfig) {
	overlay(&c.Host, o.Host)
	overlay(&c.Port, o.Port)
	overlay(&c.ReadTimeout, o.ReadTimeout)
	overlay(&c.WriteTimeout, o.WriteTimeout)
	overlay(&c.ShutdownTimeout, o.ShutdownTimeout)
}

func (c *ServerConfig) loadDefaults() {
	setDefault(&c.Host, "0.0.0.0")
	setDefault(&c.Port, 8080)
	setDefault(&c.ReadTimeout, "1m")
	// generation workflows hold the response open across several
	// remote model calls
	setDefault(&c.WriteTimeout, "15m")
	setDefault(&c.ShutdownTimeout, "30s")
}

func (c *ServerConfig) loadEnv() {
	fromEnv(&c.Host, EnvServerHost)
	fromEnvInt(&c.Port, EnvServerPort)
	fromEnv(&c.ReadTimeout, EnvServerReadTimeout)
	fromEnv(&c.WriteTimeout, EnvServerWriteTimeout)
	fromEnv(&c.ShutdownTimeout, EnvServerShutdownTimeout)
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	for field, value := range map[string]string{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", field, err)
		}
	}

	return nil
}
