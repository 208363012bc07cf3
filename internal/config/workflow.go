package config

import (
	"fmt"
	"time"
)

const (
	EnvWorkflowStatusResetDelay = "BRANDFORGE_WORKFLOW_STATUS_RESET_DELAY"
	EnvWorkflowDocumentFormat   = "BRANDFORGE_WORKFLOW_DOCUMENT_FORMAT"
)

// WorkflowConfig holds generation workflow settings.
type WorkflowConfig struct {
	// StatusResetDelay controls how long a finished run's status is
	// held before the progress tracker returns to idle.
	StatusResetDelay string `toml:"status_reset_delay"`
	// DocumentFormat is the output format requested from document assembly.
	DocumentFormat string `toml:"document_format"`
}

// StatusResetDelayDuration returns StatusResetDelay as a time.Duration.
func (c *WorkflowConfig) StatusResetDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.StatusResetDelay)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	setDefault(&c.StatusResetDelay, "3s")
	setDefault(&c.DocumentFormat, "markdown")
	fromEnv(&c.StatusResetDelay, EnvWorkflowStatusResetDelay)
	fromEnv(&c.DocumentFormat, EnvWorkflowDocumentFormat)

	if _, err := time.ParseDuration(c.StatusResetDelay); err != nil {
		return fmt.Errorf("invalid status_reset_delay: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(o *WorkflowConfig) {
	overlay(&c.StatusResetDelay, o.StatusResetDelay)
	overlay(&c.DocumentFormat, o.DocumentFormat)
}
