package queries

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrGetRemainingToAllocateQueryIsNotConstructed = errors.New(
	"GetRemainingToAllocateQuery must be created via NewGetRemainingToAllocateQuery constructor",
)

// GetRemainingToAllocateQuery computes how much of an MO's target quantity
// has not yet been planned into batches. Planners use it to size the next
// batch split; cancelled batches do not count against the target.
//
// Example:
//
//	query, err := NewGetRemainingToAllocateQuery(moID)
//	if err != nil {
//	    return err
//	}
//
//	remaining, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get remaining quantity: %w", err)
//	}
//
//	fmt.Printf("MO %s: %.2f kg still unplanned\n", remaining.MOID, remaining.RemainingKg)
type GetRemainingToAllocateQuery struct {
	moID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRemainingToAllocateQuery creates a query for one MO's unplanned
// quantity.
func NewGetRemainingToAllocateQuery(moID kernel.UUID) (GetRemainingToAllocateQuery, error) {
	if err := moID.Validate(); err != nil {
		return GetRemainingToAllocateQuery{}, err
	}
	return GetRemainingToAllocateQuery{
		moID:  moID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// MOID returns the manufacturing order being inspected.
func (q GetRemainingToAllocateQuery) MOID() kernel.UUID {
	return q.moID
}

// Validate ensures the query was created through the constructor.
func (q GetRemainingToAllocateQuery) Validate() error {
	return q.guard.Validate(ErrGetRemainingToAllocateQueryIsNotConstructed)
}

// GetRemainingToAllocateQueryResponse carries the MO's quantity balance.
// RemainingKg never goes below zero even when batches overshoot the target.
type GetRemainingToAllocateQueryResponse struct {
	MOID        kernel.UUID
	TargetKg    float64
	PlannedKg   float64
	RemainingKg float64
}
