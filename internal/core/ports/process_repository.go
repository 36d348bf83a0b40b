package ports

import (
	"context"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/process"
)

// ExecutionRepository defines the persistence contract for pipeline steps.
type ExecutionRepository interface {
	// Add persists a new pipeline step.
	Add(ctx context.Context, e *process.ProcessExecution) error

	// Update persists changes to an existing pipeline step.
	Update(ctx context.Context, e *process.ProcessExecution) error

	// Get retrieves a pipeline step by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*process.ProcessExecution, error)

	// GetAllByMOID retrieves the full pipeline of an MO ordered by sequence.
	GetAllByMOID(ctx context.Context, moID kernel.UUID) ([]*process.ProcessExecution, error)
}

// AssignmentRepository defines the persistence contract for the append-only
// operator assignment history.
type AssignmentRepository interface {
	// Add persists a new assignment record.
	Add(ctx context.Context, a *process.ProcessAssignment) error

	// Update persists the closing of an existing record. Closed records are
	// never reopened.
	Update(ctx context.Context, a *process.ProcessAssignment) error

	// Get retrieves an assignment record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*process.ProcessAssignment, error)

	// GetActiveByExecutionID retrieves the open assignment of a pipeline
	// step, if any.
	GetActiveByExecutionID(ctx context.Context, executionID kernel.UUID) (*process.ProcessAssignment, error)
}

// AllocationRepository defines the persistence contract for batch-to-process
// bindings.
type AllocationRepository interface {
	// Add persists a new allocation.
	Add(ctx context.Context, al *process.BatchAllocation) error

	// Update persists changes to an existing allocation.
	Update(ctx context.Context, al *process.BatchAllocation) error

	// Get retrieves an allocation by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*process.BatchAllocation, error)

	// GetOpenByBatchID retrieves the in-flight allocation of a batch, if any.
	// Used to reject a second allocation while one is open.
	GetOpenByBatchID(ctx context.Context, batchID kernel.UUID) (*process.BatchAllocation, error)
}
