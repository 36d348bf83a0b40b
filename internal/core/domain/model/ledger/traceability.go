package ledger

import (
	"sort"
	"time"

	"mestrace/internal/core/domain/model/kernel"
)

// TraceabilityEvent is one row of the chronological timeline projection.
// It is a read model: rebuildable at any time from the ledger entries, never
// a source of truth.
type TraceabilityEvent struct {
	Sequence     int
	EntryID      kernel.UUID
	ActivityType ActivityType
	Actor        kernel.UUID
	OccurredAt   time.Time

	MOID        *kernel.UUID
	BatchID     *kernel.UUID
	ExecutionID *kernel.UUID

	OKQuantityKg     *float64
	ScrapQuantityKg  *float64
	ReworkQuantityKg *float64

	Reason  string
	Remarks string
}

// BuildTimeline projects ledger entries into a chronological timeline.
// Entries with equal timestamps keep their input order, so replays of the
// same ledger produce the same timeline.
func BuildTimeline(entries []*ProcessActivityLog) []TraceabilityEvent {
	sorted := make([]*ProcessActivityLog, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt().Before(sorted[j].OccurredAt())
	})

	events := make([]TraceabilityEvent, 0, len(sorted))
	for i, e := range sorted {
		d := e.Details()
		events = append(events, TraceabilityEvent{
			Sequence:         i + 1,
			EntryID:          e.ID(),
			ActivityType:     e.ActivityType(),
			Actor:            e.Actor(),
			OccurredAt:       e.OccurredAt(),
			MOID:             d.MOID,
			BatchID:          d.BatchID,
			ExecutionID:      d.ExecutionID,
			OKQuantityKg:     quantityKg(d.OKQuantity),
			ScrapQuantityKg:  quantityKg(d.ScrapQuantity),
			ReworkQuantityKg: quantityKg(d.ReworkQuantity),
			Reason:           d.Reason,
			Remarks:          d.Remarks,
		})
	}
	return events
}

func quantityKg(q *kernel.Quantity) *float64 {
	if q == nil {
		return nil
	}
	kg := q.Kg()
	return &kg
}
