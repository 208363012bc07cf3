// Package prompts implements the prompt override domain for Brandforge.
// It provides types, data access, and HTTP handlers for managing named
// prompt instruction overrides per generation stage.
package prompts

import "github.com/google/uuid"

// Prompt represents a named instruction override for a generation stage.
// At most one prompt per stage is active; generation for that stage uses
// the active override's instructions instead of the built-in defaults.
type Prompt struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Stage        Stage     `json:"stage"`
	Instructions string    `json:"instructions"`
	Description  *string   `json:"description"`
	Active       bool      `json:"active"`
}

// CreateCommand carries the data needed to create a new prompt override.
type CreateCommand struct {
	Name         string  `json:"name"`
	Stage        Stage   `json:"stage"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

// Validate rejects commands missing required fields.
func (c CreateCommand) Validate() error {
	if c.Name == "" || c.Instructions == "" {
		return ErrMissingField
	}
	return nil
}

// UpdateCommand carries the data needed to update an existing prompt override.
type UpdateCommand struct {
	Name         string  `json:"name"`
	Stage        Stage   `json:"stage"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

// Validate rejects commands missing required fields.
func (c UpdateCommand) Validate() error {
	if c.Name == "" || c.Instructions == "" {
		return ErrMissingField
	}
	return nil
}
