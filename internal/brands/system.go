package brands

import (
	"context"

	"github.com/google/uuid"

	"brandforge/pkg/pagination"
)

// System defines the public contract for brand domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Brand], error)

	Find(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindBySample(ctx context.Context, sampleID uuid.UUID) (*Brand, error)
	Generate(ctx context.Context, sampleID uuid.UUID) (*Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
