package queries

import (
	"context"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRemainingToAllocateQueryHandler computes the unplanned quantity of an MO
// directly in the database: target quantity minus the sum of planned batch
// quantities, skipping cancelled batches.
type GetRemainingToAllocateQueryHandler struct {
	db *gorm.DB
}

// NewGetRemainingToAllocateQueryHandler creates a handler for remaining
// quantity queries. Requires a GORM database connection for query execution.
func NewGetRemainingToAllocateQueryHandler(db *gorm.DB) GetRemainingToAllocateQueryHandler {
	return GetRemainingToAllocateQueryHandler{db: db}
}

// Handle executes the query for one MO.
// Returns ObjectNotFoundError when the MO does not exist.
func (h GetRemainingToAllocateQueryHandler) Handle(
	ctx context.Context,
	query GetRemainingToAllocateQuery,
) (GetRemainingToAllocateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRemainingToAllocateQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			mo.id,
			mo.target_quantity,
			COALESCE(SUM(b.planned_quantity), 0)
		FROM manufacturing_orders mo
		LEFT JOIN batches b ON b.mo_id = mo.id AND b.status != ?
		WHERE mo.id = ?
		GROUP BY mo.id, mo.target_quantity
	`, batch.Cancelled, query.MOID().Bytes()).Rows()
	if err != nil {
		return GetRemainingToAllocateQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetRemainingToAllocateQueryResponse{}, err
		}
		return GetRemainingToAllocateQueryResponse{},
			errs.NewObjectNotFoundError("manufacturing order", query.MOID().String())
	}

	var id uuid.UUID
	var targetKg, plannedKg float64
	if err = rows.Scan(&id, &targetKg, &plannedKg); err != nil {
		return GetRemainingToAllocateQueryResponse{}, err
	}

	moID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetRemainingToAllocateQueryResponse{}, err
	}

	remainingKg := targetKg - plannedKg
	if remainingKg < 0 {
		remainingKg = 0
	}

	return GetRemainingToAllocateQueryResponse{
		MOID:        moID,
		TargetKg:    targetKg,
		PlannedKg:   plannedKg,
		RemainingKg: remainingKg,
	}, nil
}
