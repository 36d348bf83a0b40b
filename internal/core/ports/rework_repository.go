package ports

import (
	"context"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/rework"
)

// CompletionRepository defines the persistence contract for the immutable
// process completion records.
type CompletionRepository interface {
	// Add persists a new completion record. Completions are never updated.
	Add(ctx context.Context, c *rework.BatchProcessCompletion) error

	// Get retrieves a completion record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rework.BatchProcessCompletion, error)

	// GetLatestCycleNumber returns the highest rework cycle number recorded
	// for the batch on the given step, 0 when only a first pass exists.
	GetLatestCycleNumber(ctx context.Context, batchID, executionID kernel.UUID) (int, error)
}

// ReworkBatchRepository defines the persistence contract for rework jobs.
type ReworkBatchRepository interface {
	// Add persists a new rework job.
	Add(ctx context.Context, r *rework.ReworkBatch) error

	// Update persists lifecycle changes of a rework job.
	Update(ctx context.Context, r *rework.ReworkBatch) error

	// Get retrieves a rework job by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rework.ReworkBatch, error)
}

// FIReworkRepository defines the persistence contract for final-inspection
// rework cycles.
type FIReworkRepository interface {
	// Add persists a new cycle.
	Add(ctx context.Context, f *rework.FinalInspectionRework) error

	// Update persists lifecycle and re-inspection changes of a cycle.
	Update(ctx context.Context, f *rework.FinalInspectionRework) error

	// Get retrieves a cycle by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rework.FinalInspectionRework, error)

	// GetLatestByBatchID retrieves the cycle with the highest count for the
	// batch, if any.
	GetLatestByBatchID(ctx context.Context, batchID kernel.UUID) (*rework.FinalInspectionRework, error)
}
