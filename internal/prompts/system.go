package prompts

import (
	"context"

	"github.com/google/uuid"

	"brandforge/pkg/pagination"
)

// System is the public contract for prompt domain operations.
//
// CRUD operations manage stored overrides. Activate enforces the
// one-active-per-stage rule transactionally. Instructions resolves the
// effective text for a stage (active override, else built-in default),
// while Spec always returns the built-in response specification.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Prompt], error)
	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Activate(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error)

	Instructions(ctx context.Context, stage Stage) (string, error)
	Spec(ctx context.Context, stage Stage) (string, error)
}
