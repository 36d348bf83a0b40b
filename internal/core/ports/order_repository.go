package ports

import (
	"context"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/order"
)

// MORepository defines the persistence contract for manufacturing order
// aggregates, workflow state included.
type MORepository interface {
	// Add persists a new MO aggregate together with its approval workflow.
	Add(ctx context.Context, aggregate *order.ManufacturingOrder) error

	// Update persists changes to an existing MO aggregate.
	Update(ctx context.Context, aggregate *order.ManufacturingOrder) error

	// Get retrieves an MO aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.ManufacturingOrder, error)

	// GetByNumber retrieves an MO aggregate by its human-readable number.
	GetByNumber(ctx context.Context, moNumber string) (*order.ManufacturingOrder, error)
}
