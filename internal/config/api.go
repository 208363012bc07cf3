package config

import (
	"fmt"

	"brandforge/pkg/formatting"
	"brandforge/pkg/middleware"
	"brandforge/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "BRANDFORGE_CORS_ENABLED",
	Origins:          "BRANDFORGE_CORS_ORIGINS",
	AllowedMethods:   "BRANDFORGE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "BRANDFORGE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "BRANDFORGE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "BRANDFORGE_CORS_MAX_AGE",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "BRANDFORGE_AUTH_ENABLED",
	Issuer:   "BRANDFORGE_AUTH_ISSUER",
	ClientID: "BRANDFORGE_AUTH_CLIENT_ID",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "BRANDFORGE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "BRANDFORGE_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, upload, CORS, auth, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Auth          middleware.AuthConfig `toml:"auth"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// MaxUploadSizeBytes returns the upload limit as a byte count,
// falling back to 25MB on an unparsable value.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 25 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, auth, and pagination configs.
func (c *APIConfig) Finalize() error {
	setDefault(&c.BasePath, "/api")
	setDefault(&c.MaxUploadSize, "25MB")
	fromEnv(&c.BasePath, "BRANDFORGE_API_BASE_PATH")
	fromEnv(&c.MaxUploadSize, "BRANDFORGE_API_MAX_UPLOAD_SIZE")

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(o *APIConfig) {
	overlay(&c.BasePath, o.BasePath)
	overlay(&c.MaxUploadSize, o.MaxUploadSize)

	c.CORS.Merge(&o.CORS)
	c.Auth.Merge(&o.Auth)
	c.Pagination.Merge(&o.Pagination)
}
