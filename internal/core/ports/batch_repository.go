package ports

import (
	"context"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for batch aggregates and
// the per-MO batch sequence.
type BatchRepository interface {
	// Add persists a new batch aggregate.
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Update persists changes to an existing batch aggregate.
	Update(ctx context.Context, aggregate *batch.Batch) error

	// Get retrieves a batch aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// GetAllByMOID retrieves every batch split from the given MO.
	GetAllByMOID(ctx context.Context, moID kernel.UUID) ([]*batch.Batch, error)

	// NextSequence atomically claims the next batch sequence number for the
	// MO. Implementations must serialize concurrent claims so that two
	// batches of one MO never share a number.
	NextSequence(ctx context.Context, moID kernel.UUID) (int, error)
}

// FGVerificationRepository defines the persistence contract for
// finished-goods verifications.
type FGVerificationRepository interface {
	// Add persists a new verification.
	Add(ctx context.Context, v *batch.FinishedGoodsVerification) error

	// Update persists changes to an existing verification.
	Update(ctx context.Context, v *batch.FinishedGoodsVerification) error

	// Get retrieves a verification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*batch.FinishedGoodsVerification, error)

	// GetByBatchID retrieves the verification opened for the given batch.
	GetByBatchID(ctx context.Context, batchID kernel.UUID) (*batch.FinishedGoodsVerification, error)
}
