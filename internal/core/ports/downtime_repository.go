package ports

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/kernel"
)

// StopRepository defines the persistence contract for process stops.
type StopRepository interface {
	// Add persists a new stop.
	Add(ctx context.Context, s *downtime.ProcessStop) error

	// Update persists the resume of an existing stop.
	Update(ctx context.Context, s *downtime.ProcessStop) error

	// Get retrieves a stop by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*downtime.ProcessStop, error)

	// GetOpenByExecutionID retrieves the unresolved stop of a pipeline step,
	// if any.
	GetOpenByExecutionID(ctx context.Context, executionID kernel.UUID) (*downtime.ProcessStop, error)

	// GetResolvedByExecutionAndDay retrieves all resolved stops of a pipeline
	// step stopped on the given UTC day.
	GetResolvedByExecutionAndDay(ctx context.Context, executionID kernel.UUID, day time.Time) ([]*downtime.ProcessStop, error)

	// GetExecutionsWithStopsOnDay retrieves the pipeline steps that had at
	// least one resolved stop on the given UTC day. The summary refresh walks
	// this list.
	GetExecutionsWithStopsOnDay(ctx context.Context, day time.Time) ([]kernel.UUID, error)
}

// SummaryRepository defines the persistence contract for per-day downtime
// rollups.
type SummaryRepository interface {
	// Upsert replaces the summary row for the summary's (execution, day)
	// pair. Summaries are idempotent recomputations, so replacing is safe.
	Upsert(ctx context.Context, s *downtime.ProcessDowntimeSummary) error

	// GetByExecutionAndDay retrieves the summary of a pipeline step for the
	// given UTC day, if any.
	GetByExecutionAndDay(ctx context.Context, executionID kernel.UUID, day time.Time) (*downtime.ProcessDowntimeSummary, error)
}
