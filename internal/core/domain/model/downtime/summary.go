package downtime

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrSummaryIsNotConstructed is returned when a ProcessDowntimeSummary
// instance was not created through the NewProcessDowntimeSummary factory
// method.
var ErrSummaryIsNotConstructed = errors.New(
	"ProcessDowntimeSummary must be created via NewProcessDowntimeSummary constructor")

// ProcessDowntimeSummary is the per-day rollup of resolved stops for one
// pipeline step. Summaries are idempotent recomputations: rebuilding the same
// (execution, day) pair from the same stops yields the same totals, so a
// refresh simply replaces the row.
type ProcessDowntimeSummary struct {
	id          kernel.UUID
	executionID kernel.UUID
	day         time.Time

	totalStops           int
	totalDowntimeMinutes int
	minutesByReason      map[StopReason]int

	computedAt time.Time

	guard guard.ConstructorGuard
}

// NewProcessDowntimeSummary creates a rollup row. The day is normalized to
// midnight UTC; totals come from the pure aggregator in domain/services.
func NewProcessDowntimeSummary(
	id kernel.UUID,
	executionID kernel.UUID,
	day time.Time,
	totalStops int,
	totalDowntimeMinutes int,
	minutesByReason map[StopReason]int,
	computedAt time.Time,
) (*ProcessDowntimeSummary, error) {
	s := &ProcessDowntimeSummary{
		day:        Day(day),
		computedAt: computedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setExecutionID(executionID),
		s.setTotals(totalStops, totalDowntimeMinutes),
		s.setMinutesByReason(minutesByReason),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the summary was created through its constructor.
func (s *ProcessDowntimeSummary) Validate() error {
	if s == nil {
		return ErrSummaryIsNotConstructed
	}
	return s.guard.Validate(ErrSummaryIsNotConstructed)
}

func (s *ProcessDowntimeSummary) ID() kernel.UUID {
	return s.id
}

func (s *ProcessDowntimeSummary) ExecutionID() kernel.UUID {
	return s.executionID
}

// Day returns the UTC midnight of the summarized day.
func (s *ProcessDowntimeSummary) Day() time.Time {
	return s.day
}

func (s *ProcessDowntimeSummary) TotalStops() int {
	return s.totalStops
}

func (s *ProcessDowntimeSummary) TotalDowntimeMinutes() int {
	return s.totalDowntimeMinutes
}

// MinutesByReason returns the per-reason downtime breakdown.
func (s *ProcessDowntimeSummary) MinutesByReason() map[StopReason]int {
	out := make(map[StopReason]int, len(s.minutesByReason))
	for r, m := range s.minutesByReason {
		out[r] = m
	}
	return out
}

func (s *ProcessDowntimeSummary) ComputedAt() time.Time {
	return s.computedAt
}

// Day normalizes a timestamp to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *ProcessDowntimeSummary) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	s.id = id
	return nil
}

func (s *ProcessDowntimeSummary) setExecutionID(executionID kernel.UUID) error {
	if err := executionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("executionID", err)
	}
	s.executionID = executionID
	return nil
}

func (s *ProcessDowntimeSummary) setTotals(totalStops, totalDowntimeMinutes int) error {
	if totalStops < 0 {
		return errs.NewValueIsInvalidError("totalStops")
	}
	if totalDowntimeMinutes < 0 {
		return errs.NewValueIsInvalidError("totalDowntimeMinutes")
	}
	s.totalStops = totalStops
	s.totalDowntimeMinutes = totalDowntimeMinutes
	return nil
}

func (s *ProcessDowntimeSummary) setMinutesByReason(minutesByReason map[StopReason]int) error {
	out := make(map[StopReason]int, len(minutesByReason))
	for r, m := range minutesByReason {
		if err := r.Validate(); err != nil {
			return err
		}
		if m < 0 {
			return errs.NewValueIsInvalidError("minutesByReason")
		}
		out[r] = m
	}
	s.minutesByReason = out
	return nil
}
