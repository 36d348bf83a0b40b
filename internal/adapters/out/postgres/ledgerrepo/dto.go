// Package ledgerrepo provides data transfer objects and mapping functions
// for the append-only activity ledger. Detail fields are flattened into
// nullable columns so timeline queries can scan them directly.
package ledgerrepo

import (
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// ActivityLogDTO represents the database structure for ledger entries.
// Rows are insert-only; there is no update path.
type ActivityLogDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActivityType   int
	Actor          uuid.UUID  `gorm:"type:uuid"`
	OccurredAt     time.Time  `gorm:"index"`
	MOID           *uuid.UUID `gorm:"column:mo_id;type:uuid;index"`
	BatchID        *uuid.UUID `gorm:"type:uuid;index"`
	ExecutionID    *uuid.UUID `gorm:"type:uuid"`
	OKQuantity     *float64
	ScrapQuantity  *float64
	ReworkQuantity *float64
	Reason         string
	Remarks        string
}

// TableName overrides GORM's default naming to use "process_activity_logs".
func (ActivityLogDTO) TableName() string {
	return "process_activity_logs"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	restored, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func optionalKg(q *kernel.Quantity) *float64 {
	if q == nil {
		return nil
	}
	kg := q.Kg()
	return &kg
}

func restoreOptionalQuantity(kg *float64) (*kernel.Quantity, error) {
	if kg == nil {
		return nil, nil
	}
	q, err := kernel.NewQuantity(*kg)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(e *ledger.ProcessActivityLog) ActivityLogDTO {
	details := e.Details()
	return ActivityLogDTO{
		ID:             e.ID().Bytes(),
		ActivityType:   int(e.ActivityType()),
		Actor:          e.Actor().Bytes(),
		OccurredAt:     e.OccurredAt(),
		MOID:           optionalID(details.MOID),
		BatchID:        optionalID(details.BatchID),
		ExecutionID:    optionalID(details.ExecutionID),
		OKQuantity:     optionalKg(details.OKQuantity),
		ScrapQuantity:  optionalKg(details.ScrapQuantity),
		ReworkQuantity: optionalKg(details.ReworkQuantity),
		Reason:         details.Reason,
		Remarks:        details.Remarks,
	}
}

// toDomain converts a database DTO back to a ledger entry.
func toDomain(dto ActivityLogDTO) (*ledger.ProcessActivityLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	actor, err := kernel.UUIDFromBytes(dto.Actor[:])
	if err != nil {
		return nil, err
	}

	moID, err := restoreOptionalID(dto.MOID)
	if err != nil {
		return nil, err
	}
	batchID, err := restoreOptionalID(dto.BatchID)
	if err != nil {
		return nil, err
	}
	executionID, err := restoreOptionalID(dto.ExecutionID)
	if err != nil {
		return nil, err
	}

	okQuantity, err := restoreOptionalQuantity(dto.OKQuantity)
	if err != nil {
		return nil, err
	}
	scrapQuantity, err := restoreOptionalQuantity(dto.ScrapQuantity)
	if err != nil {
		return nil, err
	}
	reworkQuantity, err := restoreOptionalQuantity(dto.ReworkQuantity)
	if err != nil {
		return nil, err
	}

	return ledger.RestoreProcessActivityLog(
		id,
		ledger.ActivityType(dto.ActivityType),
		actor,
		dto.OccurredAt,
		ledger.ActivityDetails{
			MOID:           moID,
			BatchID:        batchID,
			ExecutionID:    executionID,
			OKQuantity:     okQuantity,
			ScrapQuantity:  scrapQuantity,
			ReworkQuantity: reworkQuantity,
			Reason:         dto.Reason,
			Remarks:        dto.Remarks,
		},
	)
}
