// Package processrepo provides data transfer objects and mapping functions
// for pipeline persistence: the per-MO process executions, the append-only
// operator assignment history, and batch-to-process allocations. Heat numbers
// on allocations are stored as a native postgres text array.
package processrepo

import (
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/process"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ExecutionDTO represents the database structure for pipeline steps.
type ExecutionDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	MOID               uuid.UUID `gorm:"column:mo_id;type:uuid;index"`
	ProcessCode        string
	ProcessName        string
	SequenceOrder      int
	Status             int
	AssignedOperator   *uuid.UUID `gorm:"type:uuid"`
	AssignedSupervisor *uuid.UUID `gorm:"type:uuid"`
	ActualStart        *time.Time
	ActualEnd          *time.Time
}

// TableName overrides GORM's default naming to use "process_executions".
func (ExecutionDTO) TableName() string {
	return "process_executions"
}

// AssignmentDTO represents the database structure for operator assignment
// records. Rows are append-only; closing a record is the only update.
type AssignmentDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExecutionID      uuid.UUID `gorm:"type:uuid;index"`
	OperatorID       uuid.UUID `gorm:"type:uuid"`
	AssignedBy       uuid.UUID `gorm:"type:uuid"`
	Status           int
	PreviousOperator *uuid.UUID `gorm:"type:uuid"`
	ReassignReason   string
	AssignedAt       time.Time
	ClosedAt         *time.Time
}

// TableName overrides GORM's default naming to use "process_assignments".
func (AssignmentDTO) TableName() string {
	return "process_assignments"
}

// AllocationDTO represents the database structure for batch-to-process
// bindings.
type AllocationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID     uuid.UUID `gorm:"type:uuid;index"`
	ExecutionID uuid.UUID `gorm:"type:uuid;index"`
	OperatorID  uuid.UUID `gorm:"type:uuid"`
	AllocatedBy uuid.UUID `gorm:"type:uuid"`
	HeatNumbers pq.StringArray `gorm:"type:text[]"`
	Status      int
	AllocatedAt time.Time
	ReceivedAt  *time.Time
	ReceivedBy  *uuid.UUID `gorm:"type:uuid"`
}

// TableName overrides GORM's default naming to use "batch_allocations".
func (AllocationDTO) TableName() string {
	return "batch_allocations"
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

// executionFromDomain converts a pipeline step to its database
// representation.
func executionFromDomain(e *process.ProcessExecution) ExecutionDTO {
	return ExecutionDTO{
		ID:                 e.ID().Bytes(),
		MOID:               e.MOID().Bytes(),
		ProcessCode:        e.ProcessCode(),
		ProcessName:        e.ProcessName(),
		SequenceOrder:      e.SequenceOrder(),
		Status:             int(e.Status()),
		AssignedOperator:   optionalID(e.AssignedOperator()),
		AssignedSupervisor: optionalID(e.AssignedSupervisor()),
		ActualStart:        e.ActualStart(),
		ActualEnd:          e.ActualEnd(),
	}
}

// executionToDomain converts a database DTO back to a pipeline step.
func executionToDomain(dto ExecutionDTO) (*process.ProcessExecution, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	moID, err := kernel.UUIDFromBytes(dto.MOID[:])
	if err != nil {
		return nil, err
	}

	operator, err := restoreOptionalID(dto.AssignedOperator)
	if err != nil {
		return nil, err
	}

	supervisor, err := restoreOptionalID(dto.AssignedSupervisor)
	if err != nil {
		return nil, err
	}

	return process.RestoreProcessExecution(
		id, moID,
		dto.ProcessCode, dto.ProcessName, dto.SequenceOrder,
		process.ExecutionStatus(dto.Status),
		operator, supervisor,
		dto.ActualStart, dto.ActualEnd,
	)
}

// assignmentFromDomain converts an assignment record to its database
// representation.
func assignmentFromDomain(a *process.ProcessAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:               a.ID().Bytes(),
		ExecutionID:      a.ExecutionID().Bytes(),
		OperatorID:       a.OperatorID().Bytes(),
		AssignedBy:       a.AssignedBy().Bytes(),
		Status:           int(a.Status()),
		PreviousOperator: optionalID(a.PreviousOperator()),
		ReassignReason:   a.ReassignReason(),
		AssignedAt:       a.AssignedAt(),
		ClosedAt:         a.ClosedAt(),
	}
}

// assignmentToDomain converts a database DTO back to an assignment record.
func assignmentToDomain(dto AssignmentDTO) (*process.ProcessAssignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	executionID, err := kernel.UUIDFromBytes(dto.ExecutionID[:])
	if err != nil {
		return nil, err
	}

	operatorID, err := kernel.UUIDFromBytes(dto.OperatorID[:])
	if err != nil {
		return nil, err
	}

	assignedBy, err := kernel.UUIDFromBytes(dto.AssignedBy[:])
	if err != nil {
		return nil, err
	}

	previousOperator, err := restoreOptionalID(dto.PreviousOperator)
	if err != nil {
		return nil, err
	}

	return process.RestoreProcessAssignment(
		id, executionID, operatorID, assignedBy,
		process.AssignmentStatus(dto.Status),
		previousOperator, dto.ReassignReason,
		dto.AssignedAt, dto.ClosedAt,
	)
}

// allocationFromDomain converts an allocation to its database representation.
func allocationFromDomain(al *process.BatchAllocation) AllocationDTO {
	return AllocationDTO{
		ID:          al.ID().Bytes(),
		BatchID:     al.BatchID().Bytes(),
		ExecutionID: al.ExecutionID().Bytes(),
		OperatorID:  al.OperatorID().Bytes(),
		AllocatedBy: al.AllocatedBy().Bytes(),
		HeatNumbers: pq.StringArray(al.HeatNumbers()),
		Status:      int(al.Status()),
		AllocatedAt: al.AllocatedAt(),
		ReceivedAt:  al.ReceivedAt(),
		ReceivedBy:  optionalID(al.ReceivedBy()),
	}
}

// allocationToDomain converts a database DTO back to an allocation.
func allocationToDomain(dto AllocationDTO) (*process.BatchAllocation, error) {
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

	operatorID, err := kernel.UUIDFromBytes(dto.OperatorID[:])
	if err != nil {
		return nil, err
	}

	allocatedBy, err := kernel.UUIDFromBytes(dto.AllocatedBy[:])
	if err != nil {
		return nil, err
	}

	receivedBy, err := restoreOptionalID(dto.ReceivedBy)
	if err != nil {
		return nil, err
	}

	return process.RestoreBatchAllocation(
		id, batchID, executionID, operatorID, allocatedBy,
		[]string(dto.HeatNumbers),
		process.AllocationStatus(dto.Status),
		dto.AllocatedAt, dto.ReceivedAt, receivedBy,
	)
}
