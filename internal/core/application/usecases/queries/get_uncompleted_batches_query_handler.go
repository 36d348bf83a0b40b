package queries

import (
	"context"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncompletedBatchesQueryHandler retrieves an MO's in-flight batches from
// the database, hitting the composite (mo, status) index.
type GetUncompletedBatchesQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedBatchesQueryHandler creates a handler for in-flight batch
// queries. Requires a GORM database connection for query execution.
func NewGetUncompletedBatchesQueryHandler(db *gorm.DB) GetUncompletedBatchesQueryHandler {
	return GetUncompletedBatchesQueryHandler{db: db}
}

// Handle executes the query for one MO.
// Results are sorted by batch sequence for stable dashboard output.
func (h GetUncompletedBatchesQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedBatchesQuery,
) ([]GetUncompletedBatchesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	batches := make([]GetUncompletedBatchesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			batch_number,
			sequence,
			status,
			planned_quantity,
			completed_quantity,
			scrap_quantity
		FROM batches
		WHERE mo_id = ?
		  AND status NOT IN ?
		ORDER BY sequence
	`, query.MOID().Bytes(), []batch.Status{batch.Completed, batch.Cancelled}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var batchResp GetUncompletedBatchesQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&batchResp.BatchNumber,
			&batchResp.Sequence,
			&status,
			&batchResp.PlannedKg,
			&batchResp.CompletedKg,
			&batchResp.ScrapKg,
		)
		if err != nil {
			return nil, err
		}

		batchID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		batchResp.ID = batchID
		batchResp.Status = batch.Status(status)

		batches = append(batches, batchResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}
