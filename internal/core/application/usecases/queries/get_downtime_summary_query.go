package queries

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrGetDowntimeSummaryQueryIsNotConstructed = errors.New(
	"GetDowntimeSummaryQuery must be created via NewGetDowntimeSummaryQuery constructor",
)

// GetDowntimeSummaryQuery recomputes the downtime rollup of one process
// execution for one calendar day. Only resolved stops count; an open stop has
// no final minute figure yet. Recomputing over the same stops always yields
// the same summary.
//
// Example:
//
//	query, err := NewGetDowntimeSummaryQuery(executionID, day)
//	if err != nil {
//	    return err
//	}
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get downtime summary: %w", err)
//	}
//
//	fmt.Printf("%d stops, %d minutes lost\n", summary.TotalStops, summary.TotalDowntimeMinutes)
type GetDowntimeSummaryQuery struct {
	executionID kernel.UUID
	day         time.Time

	guard guard.ConstructorGuard
}

// NewGetDowntimeSummaryQuery creates a downtime summary query. The day is
// normalized to a UTC calendar date.
func NewGetDowntimeSummaryQuery(executionID kernel.UUID, day time.Time) (GetDowntimeSummaryQuery, error) {
	if err := executionID.Validate(); err != nil {
		return GetDowntimeSummaryQuery{}, err
	}
	return GetDowntimeSummaryQuery{
		executionID: executionID,
		day:         downtime.Day(day),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// ExecutionID returns the process execution being summarized.
func (q GetDowntimeSummaryQuery) ExecutionID() kernel.UUID {
	return q.executionID
}

// Day returns the UTC calendar date being summarized.
func (q GetDowntimeSummaryQuery) Day() time.Time {
	return q.day
}

// Validate ensures the query was created through the constructor.
func (q GetDowntimeSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetDowntimeSummaryQueryIsNotConstructed)
}

// GetDowntimeSummaryQueryResponse is the per-day downtime rollup. A day
// without resolved stops yields zero totals and an empty reason breakdown.
type GetDowntimeSummaryQueryResponse struct {
	ExecutionID          kernel.UUID
	Day                  time.Time
	TotalStops           int
	TotalDowntimeMinutes int
	MinutesByReason      map[downtime.StopReason]int
}
