package process

import (
	"errors"
	"fmt"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrAllocationIsNotConstructed is returned when a BatchAllocation instance
// was not created through the NewBatchAllocation factory method.
var ErrAllocationIsNotConstructed = errors.New(
	"BatchAllocation must be created via NewBatchAllocation constructor")

// AllocationStatus represents the state of one batch-to-process binding.
//
// State transitions:
//
//	Allocated ──> InTransit ──> Received ──> InProcess ──> Completed
//	    │             │             │
//	    └─────────────┴─────────────┴──> Returned
//
// InTransit is optional; a batch handed over on the same floor goes straight
// from Allocated to Received.
type AllocationStatus int

const (
	AllocationUnknown AllocationStatus = iota
	AllocationAllocated
	AllocationInTransit
	AllocationReceived
	AllocationInProcess
	AllocationCompleted
	AllocationReturned
)

func getAllocationStatusStrings() map[AllocationStatus]string {
	return map[AllocationStatus]string{
		AllocationUnknown:   "unknown",
		AllocationAllocated: "allocated",
		AllocationInTransit: "in_transit",
		AllocationReceived:  "received",
		AllocationInProcess: "in_process",
		AllocationCompleted: "completed",
		AllocationReturned:  "returned",
	}
}

// Validate checks if the AllocationStatus value is valid.
func (s AllocationStatus) Validate() error {
	if s <= AllocationUnknown || s > AllocationReturned {
		return errs.NewValueIsInvalidErrorWithCause("allocation status",
			fmt.Errorf("%d is not a valid allocation status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "in_transit".
func (s AllocationStatus) String() string {
	if str, ok := getAllocationStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsOpen reports whether the allocation still keeps its batch in flight.
func (s AllocationStatus) IsOpen() bool {
	return s != AllocationCompleted && s != AllocationReturned
}

// BatchAllocation binds a batch to a pipeline step and an operator. The
// receiving side stamps it on physical receipt; completion releases the batch
// for the next step.
type BatchAllocation struct {
	id          kernel.UUID
	batchID     kernel.UUID
	executionID kernel.UUID
	operatorID  kernel.UUID
	allocatedBy kernel.UUID
	heatNumbers []string
	status      AllocationStatus

	allocatedAt time.Time
	receivedAt  *time.Time
	receivedBy  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewBatchAllocation creates an allocation in the Allocated state. Heat
// numbers are optional raw-material traceability references.
func NewBatchAllocation(
	id kernel.UUID,
	batchID kernel.UUID,
	executionID kernel.UUID,
	operatorID kernel.UUID,
	allocatedBy kernel.UUID,
	heatNumbers []string,
	allocatedAt time.Time,
) (*BatchAllocation, error) {
	al := &BatchAllocation{
		status:      AllocationAllocated,
		allocatedAt: allocatedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		al.setID(id),
		al.setBatchID(batchID),
		al.setExecutionID(executionID),
		al.setOperatorID(operatorID),
		al.setAllocatedBy(allocatedBy),
		al.setHeatNumbers(heatNumbers),
	); err != nil {
		return nil, err
	}

	return al, nil
}

// RestoreBatchAllocation reconstructs an allocation from persistence.
func RestoreBatchAllocation(
	id kernel.UUID,
	batchID kernel.UUID,
	executionID kernel.UUID,
	operatorID kernel.UUID,
	allocatedBy kernel.UUID,
	heatNumbers []string,
	status AllocationStatus,
	allocatedAt time.Time,
	receivedAt *time.Time,
	receivedBy *kernel.UUID,
) (*BatchAllocation, error) {
	al := &BatchAllocation{
		allocatedAt: allocatedAt,
		receivedAt:  receivedAt,
		receivedBy:  receivedBy,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		al.setID(id),
		al.setBatchID(batchID),
		al.setExecutionID(executionID),
		al.setOperatorID(operatorID),
		al.setAllocatedBy(allocatedBy),
		al.setHeatNumbers(heatNumbers),
		al.setStatus(status),
	); err != nil {
		return nil, err
	}

	return al, nil
}

// Validate ensures the allocation was created through one of its constructors.
func (al *BatchAllocation) Validate() error {
	if al == nil {
		return ErrAllocationIsNotConstructed
	}
	return al.guard.Validate(ErrAllocationIsNotConstructed)
}

// IsEqual compares two allocations by their unique identifiers.
func (al *BatchAllocation) IsEqual(other *BatchAllocation) bool {
	return other != nil && al.id.IsEqual(other.id)
}

func (al *BatchAllocation) ID() kernel.UUID {
	return al.id
}

func (al *BatchAllocation) BatchID() kernel.UUID {
	return al.batchID
}

func (al *BatchAllocation) ExecutionID() kernel.UUID {
	return al.executionID
}

func (al *BatchAllocation) OperatorID() kernel.UUID {
	return al.operatorID
}

func (al *BatchAllocation) AllocatedBy() kernel.UUID {
	return al.allocatedBy
}

// HeatNumbers returns the raw-material heat references, possibly empty.
func (al *BatchAllocation) HeatNumbers() []string {
	out := make([]string, len(al.heatNumbers))
	copy(out, al.heatNumbers)
	return out
}

func (al *BatchAllocation) Status() AllocationStatus {
	return al.status
}

func (al *BatchAllocation) AllocatedAt() time.Time {
	return al.allocatedAt
}

func (al *BatchAllocation) ReceivedAt() *time.Time {
	return al.receivedAt
}

func (al *BatchAllocation) ReceivedBy() *kernel.UUID {
	return al.receivedBy
}

// MarkInTransit records that the batch physically left the allocating side.
func (al *BatchAllocation) MarkInTransit() error {
	if err := al.Validate(); err != nil {
		return err
	}
	if al.status != AllocationAllocated {
		return errs.NewInvalidStateTransitionError("mark allocation in transit",
			al.status.String(), AllocationAllocated.String())
	}
	al.status = AllocationInTransit
	return nil
}

// Receive stamps physical receipt by the operator.
func (al *BatchAllocation) Receive(by kernel.UUID, at time.Time) error {
	if err := al.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("receivedBy", err)
	}
	if al.status != AllocationAllocated && al.status != AllocationInTransit {
		return errs.NewInvalidStateTransitionError("receive batch",
			al.status.String(), AllocationAllocated.String())
	}
	al.status = AllocationReceived
	al.receivedAt = &at
	al.receivedBy = &by
	return nil
}

// StartProcessing marks the received batch as being worked.
func (al *BatchAllocation) StartProcessing() error {
	if err := al.Validate(); err != nil {
		return err
	}
	if al.status != AllocationReceived {
		return errs.NewInvalidStateTransitionError("start processing",
			al.status.String(), AllocationReceived.String())
	}
	al.status = AllocationInProcess
	return nil
}

// Complete closes the allocation, releasing the batch for the next step.
func (al *BatchAllocation) Complete() error {
	if err := al.Validate(); err != nil {
		return err
	}
	if al.status != AllocationReceived && al.status != AllocationInProcess {
		return errs.NewInvalidStateTransitionError("complete allocation",
			al.status.String(), AllocationReceived.String())
	}
	al.status = AllocationCompleted
	return nil
}

// Return sends the batch back to the sender. Legal only before receipt;
// once the step has taken the batch the discrepancy flow handles it.
func (al *BatchAllocation) Return() error {
	if err := al.Validate(); err != nil {
		return err
	}
	if al.status != AllocationAllocated && al.status != AllocationInTransit {
		return errs.NewInvalidStateTransitionError("return allocation",
			al.status.String(), AllocationAllocated.String())
	}
	al.status = AllocationReturned
	return nil
}

func (al *BatchAllocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	al.id = id
	return nil
}

func (al *BatchAllocation) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("batchID", err)
	}
	al.batchID = batchID
	return nil
}

func (al *BatchAllocation) setExecutionID(executionID kernel.UUID) error {
	if err := executionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("executionID", err)
	}
	al.executionID = executionID
	return nil
}

func (al *BatchAllocation) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("operatorID", err)
	}
	al.operatorID = operatorID
	return nil
}

func (al *BatchAllocation) setAllocatedBy(allocatedBy kernel.UUID) error {
	if err := allocatedBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("allocatedBy", err)
	}
	al.allocatedBy = allocatedBy
	return nil
}

func (al *BatchAllocation) setHeatNumbers(heatNumbers []string) error {
	for _, hn := range heatNumbers {
		if hn == "" {
			return errs.NewValueIsInvalidError("heatNumbers")
		}
	}
	al.heatNumbers = make([]string, len(heatNumbers))
	copy(al.heatNumbers, heatNumbers)
	return nil
}

func (al *BatchAllocation) setStatus(status AllocationStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	al.status = status
	return nil
}
