package order

import (
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
)

// TransitionRecord captures who took an approval workflow transition and when.
// Records are write-once: a transition stamps its record exactly one time and
// the record is never overwritten afterwards.
type TransitionRecord struct {
	By    kernel.UUID
	At    time.Time
	Notes string
}

// IsSet reports whether the transition has been taken.
func (r TransitionRecord) IsSet() bool {
	return !r.At.IsZero()
}

// ApprovalWorkflow tracks an MO from creation through manager approval and raw
// material allocation. It is owned 1:1 by a ManufacturingOrder and shares the
// order's transactional boundary.
type ApprovalWorkflow struct {
	status WorkflowStatus

	approval   TransitionRecord
	rejection  TransitionRecord
	allocation TransitionRecord
}

// newApprovalWorkflow creates a workflow in the initial
// PendingManagerApproval state. Only the owning order constructs workflows.
func newApprovalWorkflow() ApprovalWorkflow {
	return ApprovalWorkflow{status: PendingManagerApproval}
}

// RestoreApprovalWorkflow reconstructs a workflow from persistence.
func RestoreApprovalWorkflow(
	status WorkflowStatus,
	approval, rejection, allocation TransitionRecord,
) (ApprovalWorkflow, error) {
	if err := status.Validate(); err != nil {
		return ApprovalWorkflow{}, err
	}
	return ApprovalWorkflow{
		status:     status,
		approval:   approval,
		rejection:  rejection,
		allocation: allocation,
	}, nil
}

// Status returns the current workflow status.
func (w *ApprovalWorkflow) Status() WorkflowStatus {
	return w.status
}

// Approval returns the manager approval record. Zero value until approved.
func (w *ApprovalWorkflow) Approval() TransitionRecord {
	return w.approval
}

// Rejection returns the manager rejection record. Zero value unless rejected.
func (w *ApprovalWorkflow) Rejection() TransitionRecord {
	return w.rejection
}

// Allocation returns the RM allocation record. Zero value until allocated.
func (w *ApprovalWorkflow) Allocation() TransitionRecord {
	return w.allocation
}

func (w *ApprovalWorkflow) approve(approver kernel.UUID, notes string, at time.Time) error {
	if err := approver.Validate(); err != nil {
		return err
	}

	newStatus, err := w.status.Approve()
	if err != nil {
		return err
	}

	w.status = newStatus
	w.approval = TransitionRecord{By: approver, At: at, Notes: notes}
	return nil
}

func (w *ApprovalWorkflow) reject(manager kernel.UUID, notes string, at time.Time) error {
	if err := manager.Validate(); err != nil {
		return err
	}

	newStatus, err := w.status.Reject()
	if err != nil {
		return err
	}

	w.status = newStatus
	w.rejection = TransitionRecord{By: manager, At: at, Notes: notes}
	return nil
}

func (w *ApprovalWorkflow) allocateRM(allocator kernel.UUID, notes string, at time.Time) error {
	if err := allocator.Validate(); err != nil {
		return err
	}

	newStatus, err := w.status.AllocateRM()
	if err != nil {
		return err
	}

	w.status = newStatus
	w.allocation = TransitionRecord{By: allocator, At: at, Notes: notes}
	return nil
}

func (w *ApprovalWorkflow) markReadyForProduction() error {
	newStatus, err := w.status.MarkReadyForProduction()
	if err != nil {
		return err
	}

	w.status = newStatus
	return nil
}

// RequireReleased returns nil when the workflow permits batch creation,
// i.e. raw material has been allocated or production has already begun.
func (w *ApprovalWorkflow) RequireReleased() error {
	if w.status != RMAllocated && w.status != ReadyForProduction {
		return errs.NewInvalidStateTransitionError("create batch", w.status.String(), RMAllocated.String())
	}
	return nil
}
