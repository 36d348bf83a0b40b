package services

import (
	"time"

	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/kernel"
)

// DowntimeAggregator recomputes per-day downtime summaries from resolved
// stops. The computation is pure: the same stops always produce the same
// totals, so a summary row can be rebuilt at any time and simply replaces the
// previous one.
type DowntimeAggregator struct{}

// NewDowntimeAggregator creates a DowntimeAggregator.
func NewDowntimeAggregator() *DowntimeAggregator {
	return &DowntimeAggregator{}
}

// Summarize builds the summary for one pipeline step and one calendar day
// from the given stops. Open stops and stops of other steps or days are
// ignored; a stop belongs to the day it was stopped on, in UTC.
func (a *DowntimeAggregator) Summarize(
	summaryID kernel.UUID,
	executionID kernel.UUID,
	day time.Time,
	stops []*downtime.ProcessStop,
	computedAt time.Time,
) (*downtime.ProcessDowntimeSummary, error) {
	day = downtime.Day(day)

	totalStops := 0
	totalMinutes := 0
	byReason := make(map[downtime.StopReason]int)

	for _, stop := range stops {
		if stop == nil || !stop.IsResolved() {
			continue
		}
		if !stop.ExecutionID().IsEqual(executionID) {
			continue
		}
		if !downtime.Day(stop.StoppedAt()).Equal(day) {
			continue
		}
		minutes := *stop.DowntimeMinutes()
		totalStops++
		totalMinutes += minutes
		byReason[stop.Reason()] += minutes
	}

	return downtime.NewProcessDowntimeSummary(
		summaryID, executionID, day,
		totalStops, totalMinutes, byReason, computedAt,
	)
}
