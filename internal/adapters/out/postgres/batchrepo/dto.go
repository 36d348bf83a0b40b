// Package batchrepo provides data transfer objects and mapping functions for
// batch persistence. Besides the batch aggregate it owns the per-MO sequence
// counter rows that back deterministic batch numbering, and the
// finished-goods verification rows opened when a batch leaves its last step.
package batchrepo

import (
	"time"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BatchDTO represents the database structure for persisting batch aggregates.
type BatchDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchNumber       string    `gorm:"uniqueIndex"`
	Sequence          int
	MOID              uuid.UUID `gorm:"column:mo_id;type:uuid;index:idx_batches_mo_status"`
	ProductCode       string
	PlannedQuantity   float64
	StartedQuantity   float64
	CompletedQuantity float64
	ScrapQuantity     float64
	Status            int `gorm:"index:idx_batches_mo_status"`
	ActualStart       *time.Time
	ActualEnd         *time.Time
	CreatedBy         uuid.UUID `gorm:"type:uuid"`
}

// TableName overrides GORM's default naming to use "batches".
func (BatchDTO) TableName() string {
	return "batches"
}

// BatchCounterDTO is the per-MO sequence counter row. NextSequence locks it
// with FOR UPDATE so concurrent splits of one MO serialize on it.
type BatchCounterDTO struct {
	MOID         uuid.UUID `gorm:"column:mo_id;type:uuid;primaryKey"`
	LastSequence int
}

// TableName overrides GORM's default naming to use "batch_counters".
func (BatchCounterDTO) TableName() string {
	return "batch_counters"
}

// FGVerificationDTO represents the database structure for finished-goods
// verification rows.
type FGVerificationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID      uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Status       int
	CheckedBy    *uuid.UUID `gorm:"type:uuid"`
	CheckedAt    *time.Time
	Notes        string
	DispatchedBy *uuid.UUID `gorm:"type:uuid"`
	DispatchedAt *time.Time
}

// TableName overrides GORM's default naming to use "fg_verifications".
func (FGVerificationDTO) TableName() string {
	return "fg_verifications"
}

// fromDomain converts a batch aggregate to its database representation.
func fromDomain(b *batch.Batch) BatchDTO {
	return BatchDTO{
		ID:                b.ID().Bytes(),
		BatchNumber:       b.BatchNumber(),
		Sequence:          b.Sequence(),
		MOID:              b.MOID().Bytes(),
		ProductCode:       b.ProductCode(),
		PlannedQuantity:   b.PlannedQuantity().Kg(),
		StartedQuantity:   b.StartedQuantity().Kg(),
		CompletedQuantity: b.CompletedQuantity().Kg(),
		ScrapQuantity:     b.ScrapQuantity().Kg(),
		Status:            int(b.Status()),
		ActualStart:       b.ActualStart(),
		ActualEnd:         b.ActualEnd(),
		CreatedBy:         b.CreatedBy().Bytes(),
	}
}

// toDomain converts a database DTO back to a batch aggregate.
func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	moID, err := kernel.UUIDFromBytes(dto.MOID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	planned, err := kernel.NewQuantity(dto.PlannedQuantity)
	if err != nil {
		return nil, err
	}
	started, err := kernel.NewQuantity(dto.StartedQuantity)
	if err != nil {
		return nil, err
	}
	completed, err := kernel.NewQuantity(dto.CompletedQuantity)
	if err != nil {
		return nil, err
	}
	scrap, err := kernel.NewQuantity(dto.ScrapQuantity)
	if err != nil {
		return nil, err
	}

	return batch.RestoreBatch(
		id,
		dto.BatchNumber,
		dto.Sequence,
		moID,
		dto.ProductCode,
		planned, started, completed, scrap,
		batch.Status(dto.Status),
		dto.ActualStart, dto.ActualEnd,
		createdBy,
	)
}

// fgFromDomain converts a finished-goods verification to its database
// representation.
func fgFromDomain(v *batch.FinishedGoodsVerification) FGVerificationDTO {
	dto := FGVerificationDTO{
		ID:           v.ID().Bytes(),
		BatchID:      v.BatchID().Bytes(),
		Status:       int(v.Status()),
		CheckedAt:    v.CheckedAt(),
		Notes:        v.Notes(),
		DispatchedAt: v.DispatchedAt(),
	}
	if by := v.CheckedBy(); by != nil {
		raw := by.Bytes()
		dto.CheckedBy = &raw
	}
	if by := v.DispatchedBy(); by != nil {
		raw := by.Bytes()
		dto.DispatchedBy = &raw
	}
	return dto
}

// fgToDomain converts a database DTO back to a finished-goods verification.
func fgToDomain(dto FGVerificationDTO) (*batch.FinishedGoodsVerification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	var checkedBy *kernel.UUID
	if dto.CheckedBy != nil {
		cb, cbErr := kernel.UUIDFromBytes((*dto.CheckedBy)[:])
		if cbErr != nil {
			return nil, cbErr
		}
		checkedBy = &cb
	}

	var dispatchedBy *kernel.UUID
	if dto.DispatchedBy != nil {
		db, dbErr := kernel.UUIDFromBytes((*dto.DispatchedBy)[:])
		if dbErr != nil {
			return nil, dbErr
		}
		dispatchedBy = &db
	}

	return batch.RestoreFinishedGoodsVerification(
		id, batchID,
		batch.FGStatus(dto.Status),
		checkedBy, dto.CheckedAt, dto.Notes,
		dispatchedBy, dto.DispatchedAt,
	)
}
