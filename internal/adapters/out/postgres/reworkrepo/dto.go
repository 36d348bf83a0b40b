// Package reworkrepo provides data transfer objects and mapping functions
// for completion and rework persistence: the immutable process completion
// records, the rework jobs they open, and final-inspection rework cycles.
package reworkrepo

import (
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/rework"

	"github.com/google/uuid"
)

// CompletionDTO represents the database structure for process completion
// records. Rows are insert-only.
type CompletionDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID            uuid.UUID `gorm:"type:uuid;index:idx_completions_batch_execution"`
	ExecutionID        uuid.UUID `gorm:"type:uuid;index:idx_completions_batch_execution"`
	CompletedBy        uuid.UUID `gorm:"type:uuid"`
	InputQuantity      float64
	OKQuantity         float64
	ScrapQuantity      float64
	ReworkQuantity     float64
	ReworkCycleNumber  int
	IsReworkCycle      bool
	ParentCompletionID *uuid.UUID `gorm:"type:uuid"`
	Remarks            string
	CompletedAt        time.Time
}

// TableName overrides GORM's default naming to use
// "batch_process_completions".
func (CompletionDTO) TableName() string {
	return "batch_process_completions"
}

// ReworkBatchDTO represents the database structure for rework jobs.
type ReworkBatchDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID            uuid.UUID `gorm:"type:uuid;index"`
	ExecutionID        uuid.UUID `gorm:"type:uuid"`
	ParentCompletionID uuid.UUID `gorm:"type:uuid"`
	Quantity           float64
	Source             int
	AssignedSupervisor uuid.UUID `gorm:"type:uuid"`
	CycleNumber        int
	DefectDescription  string
	Status             int
	CreatedAt          time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
}

// TableName overrides GORM's default naming to use "rework_batches".
func (ReworkBatchDTO) TableName() string {
	return "rework_batches"
}

// FIReworkDTO represents the database structure for final-inspection rework
// cycles. A failed re-inspection inserts a new row; prior rows are never
// touched.
type FIReworkDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID              uuid.UUID `gorm:"type:uuid;index"`
	DefectiveExecutionID uuid.UUID `gorm:"type:uuid"`
	DefectiveSupervisor  uuid.UUID `gorm:"type:uuid"`
	Quantity             float64
	DefectDescription    string
	ReworkCycleCount     int
	Status               int
	CreatedBy            uuid.UUID `gorm:"type:uuid"`
	CreatedAt            time.Time
	StartedAt            *time.Time
	CompletedAt          *time.Time
	ReinspectionPassed   *bool
	ReinspectedBy        *uuid.UUID `gorm:"type:uuid"`
	ReinspectedAt        *time.Time
}

// TableName overrides GORM's default naming to use "fi_reworks".
func (FIReworkDTO) TableName() string {
	return "fi_reworks"
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

// completionFromDomain converts a completion record to its database
// representation.
func completionFromDomain(c *rework.BatchProcessCompletion) CompletionDTO {
	return CompletionDTO{
		ID:                 c.ID().Bytes(),
		BatchID:            c.BatchID().Bytes(),
		ExecutionID:        c.ExecutionID().Bytes(),
		CompletedBy:        c.CompletedBy().Bytes(),
		InputQuantity:      c.InputQuantity().Kg(),
		OKQuantity:         c.OKQuantity().Kg(),
		ScrapQuantity:      c.ScrapQuantity().Kg(),
		ReworkQuantity:     c.ReworkQuantity().Kg(),
		ReworkCycleNumber:  c.ReworkCycleNumber(),
		IsReworkCycle:      c.IsReworkCycle(),
		ParentCompletionID: optionalID(c.ParentCompletionID()),
		Remarks:            c.Remarks(),
		CompletedAt:        c.CompletedAt(),
	}
}

// completionToDomain converts a database DTO back to a completion record.
func completionToDomain(dto CompletionDTO) (*rework.BatchProcessCompletion, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	executionID, err := kernel.UUIDFromBytes(dto.ExecutionID[:])
	if err != nil {
		return nil, err
	}

	completedBy, err := kernel.UUIDFromBytes(dto.CompletedBy[:])
	if err != nil {
		return nil, err
	}

	input, err := kernel.NewQuantity(dto.InputQuantity)
	if err != nil {
		return nil, err
	}
	ok, err := kernel.NewQuantity(dto.OKQuantity)
	if err != nil {
		return nil, err
	}
	scrap, err := kernel.NewQuantity(dto.ScrapQuantity)
	if err != nil {
		return nil, err
	}
	reworkQty, err := kernel.NewQuantity(dto.ReworkQuantity)
	if err != nil {
		return nil, err
	}

	parentCompletionID, err := restoreOptionalID(dto.ParentCompletionID)
	if err != nil {
		return nil, err
	}

	return rework.RestoreBatchProcessCompletion(
		id, batchID, executionID, completedBy,
		input, ok, scrap, reworkQty,
		dto.ReworkCycleNumber, dto.IsReworkCycle, parentCompletionID,
		dto.Remarks, dto.CompletedAt,
	)
}

// reworkBatchFromDomain converts a rework job to its database representation.
func reworkBatchFromDomain(r *rework.ReworkBatch) ReworkBatchDTO {
	return ReworkBatchDTO{
		ID:                 r.ID().Bytes(),
		BatchID:            r.BatchID().Bytes(),
		ExecutionID:        r.ExecutionID().Bytes(),
		ParentCompletionID: r.ParentCompletionID().Bytes(),
		Quantity:           r.Quantity().Kg(),
		Source:             int(r.Source()),
		AssignedSupervisor: r.AssignedSupervisor().Bytes(),
		CycleNumber:        r.CycleNumber(),
		DefectDescription:  r.DefectDescription(),
		Status:             int(r.Status()),
		CreatedAt:          r.CreatedAt(),
		StartedAt:          r.StartedAt(),
		CompletedAt:        r.CompletedAt(),
	}
}

// reworkBatchToDomain converts a database DTO back to a rework job.
func reworkBatchToDomain(dto ReworkBatchDTO) (*rework.ReworkBatch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	executionID, err := kernel.UUIDFromBytes(dto.ExecutionID[:])
	if err != nil {
		return nil, err
	}

	parentCompletionID, err := kernel.UUIDFromBytes(dto.ParentCompletionID[:])
	if err != nil {
		return nil, err
	}

	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}

	assignedSupervisor, err := kernel.UUIDFromBytes(dto.AssignedSupervisor[:])
	if err != nil {
		return nil, err
	}

	return rework.RestoreReworkBatch(
		id, batchID, executionID, parentCompletionID,
		quantity, rework.Source(dto.Source), assignedSupervisor,
		dto.CycleNumber, dto.DefectDescription,
		rework.Status(dto.Status),
		dto.CreatedAt, dto.StartedAt, dto.CompletedAt,
	)
}

// fiReworkFromDomain converts a final-inspection cycle to its database
// representation.
func fiReworkFromDomain(f *rework.FinalInspectionRework) FIReworkDTO {
	return FIReworkDTO{
		ID:                   f.ID().Bytes(),
		BatchID:              f.BatchID().Bytes(),
		DefectiveExecutionID: f.DefectiveExecutionID().Bytes(),
		DefectiveSupervisor:  f.DefectiveSupervisor().Bytes(),
		Quantity:             f.Quantity().Kg(),
		DefectDescription:    f.DefectDescription(),
		ReworkCycleCount:     f.ReworkCycleCount(),
		Status:               int(f.Status()),
		CreatedBy:            f.CreatedBy().Bytes(),
		CreatedAt:            f.CreatedAt(),
		StartedAt:            f.StartedAt(),
		CompletedAt:          f.CompletedAt(),
		ReinspectionPassed:   f.ReinspectionPassed(),
		ReinspectedBy:        optionalID(f.ReinspectedBy()),
		ReinspectedAt:        f.ReinspectedAt(),
	}
}

// fiReworkToDomain converts a database DTO back to a final-inspection cycle.
func fiReworkToDomain(dto FIReworkDTO) (*rework.FinalInspectionRework, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	defectiveExecutionID, err := kernel.UUIDFromBytes(dto.DefectiveExecutionID[:])
	if err != nil {
		return nil, err
	}

	defectiveSupervisor, err := kernel.UUIDFromBytes(dto.DefectiveSupervisor[:])
	if err != nil {
		return nil, err
	}

	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	reinspectedBy, err := restoreOptionalID(dto.ReinspectedBy)
	if err != nil {
		return nil, err
	}

	return rework.RestoreFinalInspectionRework(
		id, batchID, defectiveExecutionID, defectiveSupervisor,
		quantity, dto.DefectDescription, dto.ReworkCycleCount,
		rework.Status(dto.Status),
		createdBy, dto.CreatedAt,
		dto.StartedAt, dto.CompletedAt,
		dto.ReinspectionPassed, reinspectedBy, dto.ReinspectedAt,
	)
}
