package queries

import (
	"context"
	"database/sql"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBatchTimelineQueryHandler reads the batch timeline straight from the
// ledger table. Entries with equal timestamps tie-break on entry ID so the
// same ledger always yields the same timeline.
type GetBatchTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetBatchTimelineQueryHandler creates a handler for batch timeline
// queries. Requires a GORM database connection for query execution.
func NewGetBatchTimelineQueryHandler(db *gorm.DB) GetBatchTimelineQueryHandler {
	return GetBatchTimelineQueryHandler{db: db}
}

// Handle executes the timeline query for one batch.
// An unknown batch yields an empty timeline, not an error; the ledger has
// simply never mentioned it.
func (h GetBatchTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetBatchTimelineQuery,
) ([]GetBatchTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetBatchTimelineQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			activity_type,
			actor,
			occurred_at,
			execution_id,
			ok_quantity,
			scrap_quantity,
			rework_quantity,
			reason,
			remarks
		FROM process_activity_logs
		WHERE batch_id = ?
		ORDER BY occurred_at, id
	`, query.BatchID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, actor uuid.UUID
		var activityType int
		var occurredAt time.Time
		var executionID uuid.NullUUID
		var okKg, scrapKg, reworkKg sql.NullFloat64
		var reason, remarks string

		err = rows.Scan(
			&id,
			&activityType,
			&actor,
			&occurredAt,
			&executionID,
			&okKg,
			&scrapKg,
			&reworkKg,
			&reason,
			&remarks,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		actorID, idErr := kernel.UUIDFromBytes(actor[:])
		if idErr != nil {
			return nil, idErr
		}

		event := GetBatchTimelineQueryResponse{
			Sequence:     len(events) + 1,
			EntryID:      entryID,
			ActivityType: ledger.ActivityType(activityType),
			Actor:        actorID,
			OccurredAt:   occurredAt,
			Reason:       reason,
			Remarks:      remarks,
		}

		if executionID.Valid {
			execID, idErr := kernel.UUIDFromBytes(executionID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			event.ExecutionID = &execID
		}
		event.OKQuantityKg = nullableKg(okKg)
		event.ScrapQuantityKg = nullableKg(scrapKg)
		event.ReworkQuantityKg = nullableKg(reworkKg)

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func nullableKg(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	kg := v.Float64
	return &kg
}
