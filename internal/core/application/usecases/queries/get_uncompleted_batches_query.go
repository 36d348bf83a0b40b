package queries

import (
	"errors"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrGetUncompletedBatchesQueryIsNotConstructed = errors.New(
	"GetUncompletedBatchesQuery must be created via NewGetUncompletedBatchesQuery constructor",
)

// GetUncompletedBatchesQuery retrieves all batches of an MO that are still in
// flight. Completed and cancelled batches are excluded; the rest feed the
// shop-floor dashboard.
//
// Example:
//
//	query, err := NewGetUncompletedBatchesQuery(moID)
//	if err != nil {
//	    return err
//	}
//
//	batches, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get uncompleted batches: %w", err)
//	}
//
//	fmt.Printf("%d batches still in flight\n", len(batches))
type GetUncompletedBatchesQuery struct {
	moID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUncompletedBatchesQuery creates a query for one MO's in-flight
// batches.
func NewGetUncompletedBatchesQuery(moID kernel.UUID) (GetUncompletedBatchesQuery, error) {
	if err := moID.Validate(); err != nil {
		return GetUncompletedBatchesQuery{}, err
	}
	return GetUncompletedBatchesQuery{
		moID:  moID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// MOID returns the manufacturing order being inspected.
func (q GetUncompletedBatchesQuery) MOID() kernel.UUID {
	return q.moID
}

// Validate ensures the query was created through the constructor.
func (q GetUncompletedBatchesQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedBatchesQueryIsNotConstructed)
}

// GetUncompletedBatchesQueryResponse represents one in-flight batch.
type GetUncompletedBatchesQueryResponse struct {
	ID          kernel.UUID
	BatchNumber string
	Sequence    int
	Status      batch.Status
	PlannedKg   float64
	CompletedKg float64
	ScrapKg     float64
}
