package samples

import (
	"context"

	"github.com/google/uuid"

	"brandforge/pkg/pagination"
)

// System defines the public contract for sample domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Sample], error)

	Find(ctx context.Context, id uuid.UUID) (*Sample, error)
	Create(ctx context.Context, cmd CreateCommand) (*Sample, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
