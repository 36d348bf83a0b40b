package queries

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/pkg/guard"
)

var ErrGetBatchTimelineQueryIsNotConstructed = errors.New(
	"GetBatchTimelineQuery must be created via NewGetBatchTimelineQuery constructor",
)

// GetBatchTimelineQuery retrieves the chronological activity timeline of one
// batch from the traceability ledger. The timeline is a pure projection of
// ledger entries and carries whatever detail each entry recorded.
//
// Example:
//
//	query, err := NewGetBatchTimelineQuery(batchID)
//	if err != nil {
//	    return err
//	}
//
//	events, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get batch timeline: %w", err)
//	}
//
//	for _, event := range events {
//	    fmt.Printf("%d. %s %s\n", event.Sequence, event.OccurredAt, event.ActivityType)
//	}
type GetBatchTimelineQuery struct {
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBatchTimelineQuery creates a timeline query for one batch.
func NewGetBatchTimelineQuery(batchID kernel.UUID) (GetBatchTimelineQuery, error) {
	if err := batchID.Validate(); err != nil {
		return GetBatchTimelineQuery{}, err
	}
	return GetBatchTimelineQuery{
		batchID: batchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// BatchID returns the batch whose timeline is requested.
func (q GetBatchTimelineQuery) BatchID() kernel.UUID {
	return q.batchID
}

// Validate ensures the query was created through the constructor.
func (q GetBatchTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchTimelineQueryIsNotConstructed)
}

// GetBatchTimelineQueryResponse is one event of the batch timeline.
// Optional fields are nil when the underlying ledger entry did not record
// them.
type GetBatchTimelineQueryResponse struct {
	Sequence     int
	EntryID      kernel.UUID
	ActivityType ledger.ActivityType
	Actor        kernel.UUID
	OccurredAt   time.Time

	ExecutionID *kernel.UUID

	OKQuantityKg     *float64
	ScrapQuantityKg  *float64
	ReworkQuantityKg *float64

	Reason  string
	Remarks string
}
