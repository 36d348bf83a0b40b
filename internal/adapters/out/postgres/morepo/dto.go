// Package morepo provides data transfer objects and mapping functions for
// manufacturing order persistence. The approval workflow is embedded in the
// order row: an MO and its workflow share one transactional boundary, so
// they share one table.
package morepo

import (
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// MODTO represents the database structure for persisting manufacturing order
// aggregates, approval workflow included.
type MODTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MONumber       string     `gorm:"uniqueIndex"`
	ProductCode    string     `gorm:"index"`
	TargetQuantity float64
	Shift          int
	Priority       int
	SupervisorID   *uuid.UUID `gorm:"type:uuid"`
	PlannedStart   *time.Time
	PlannedEnd     *time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
	WorkflowStatus int        `gorm:"index"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt     *time.Time
	ApprovalNotes  string
	RejectedBy     *uuid.UUID `gorm:"type:uuid"`
	RejectedAt     *time.Time
	RejectionNotes string
	AllocatedBy    *uuid.UUID `gorm:"type:uuid"`
	AllocatedAt    *time.Time
	AllocationNotes string
	IsDispatched   bool
}

// TableName overrides GORM's default naming to use "manufacturing_orders".
func (MODTO) TableName() string {
	return "manufacturing_orders"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func transitionColumns(r order.TransitionRecord) (*uuid.UUID, *time.Time, string) {
	if !r.IsSet() {
		return nil, nil, ""
	}
	by := r.By.Bytes()
	at := r.At
	return &by, &at, r.Notes
}

func restoreTransition(by *uuid.UUID, at *time.Time, notes string) (order.TransitionRecord, error) {
	if by == nil || at == nil {
		return order.TransitionRecord{}, nil
	}
	id, err := kernel.UUIDFromBytes((*by)[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}
	return order.TransitionRecord{By: id, At: *at, Notes: notes}, nil
}

// fromDomain converts an MO aggregate to its database representation.
func fromDomain(mo *order.ManufacturingOrder) MODTO {
	w := mo.Workflow()
	approvedBy, approvedAt, approvalNotes := transitionColumns(w.Approval())
	rejectedBy, rejectedAt, rejectionNotes := transitionColumns(w.Rejection())
	allocatedBy, allocatedAt, allocationNotes := transitionColumns(w.Allocation())

	return MODTO{
		ID:              mo.ID().Bytes(),
		MONumber:        mo.MONumber(),
		ProductCode:     mo.ProductCode(),
		TargetQuantity:  mo.TargetQuantity().Kg(),
		Shift:           int(mo.Shift()),
		Priority:        int(mo.Priority()),
		SupervisorID:    optionalID(mo.Supervisor()),
		PlannedStart:    mo.PlannedStart(),
		PlannedEnd:      mo.PlannedEnd(),
		ActualStart:     mo.ActualStart(),
		ActualEnd:       mo.ActualEnd(),
		WorkflowStatus:  int(w.Status()),
		ApprovedBy:      approvedBy,
		ApprovedAt:      approvedAt,
		ApprovalNotes:   approvalNotes,
		RejectedBy:      rejectedBy,
		RejectedAt:      rejectedAt,
		RejectionNotes:  rejectionNotes,
		AllocatedBy:     allocatedBy,
		AllocatedAt:     allocatedAt,
		AllocationNotes: allocationNotes,
		IsDispatched:    mo.IsDispatched(),
	}
}

// toDomain converts a database DTO back to an MO aggregate.
func toDomain(dto MODTO) (*order.ManufacturingOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	targetQuantity, err := kernel.NewQuantity(dto.TargetQuantity)
	if err != nil {
		return nil, err
	}

	var supervisorID *kernel.UUID
	if dto.SupervisorID != nil {
		sID, sErr := kernel.UUIDFromBytes((*dto.SupervisorID)[:])
		if sErr != nil {
			return nil, sErr
		}
		supervisorID = &sID
	}

	approval, err := restoreTransition(dto.ApprovedBy, dto.ApprovedAt, dto.ApprovalNotes)
	if err != nil {
		return nil, err
	}
	rejection, err := restoreTransition(dto.RejectedBy, dto.RejectedAt, dto.RejectionNotes)
	if err != nil {
		return nil, err
	}
	allocation, err := restoreTransition(dto.AllocatedBy, dto.AllocatedAt, dto.AllocationNotes)
	if err != nil {
		return nil, err
	}

	workflow, err := order.RestoreApprovalWorkflow(
		order.WorkflowStatus(dto.WorkflowStatus), approval, rejection, allocation)
	if err != nil {
		return nil, err
	}

	return order.RestoreManufacturingOrder(
		id,
		dto.MONumber,
		dto.ProductCode,
		targetQuantity,
		order.Shift(dto.Shift),
		order.Priority(dto.Priority),
		supervisorID,
		dto.PlannedStart, dto.PlannedEnd, dto.ActualStart, dto.ActualEnd,
		workflow,
		dto.IsDispatched,
	)
}
