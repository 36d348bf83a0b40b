package order

import (
	"fmt"

	"mestrace/internal/pkg/errs"
)

// WorkflowStatus represents the lifecycle state of an MO approval workflow.
// It implements a monotonic forward-only state machine: every transition moves
// strictly forward and no transition can be reverted.
//
// State transitions:
//
//	PendingManagerApproval ──┬──> ManagerApproved ──> RMAllocationPending ──> RMAllocated ──> ReadyForProduction
//	                         │         │                                        ^
//	                         │         └────────────────────────────────────────┘
//	                         │            (direct allocation, pending step skipped)
//	                         └──> ManagerRejected (terminal)
type WorkflowStatus int

const (
	// WorkflowUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized WorkflowStatus values.
	WorkflowUnknown WorkflowStatus = iota

	// PendingManagerApproval is the initial status when an MO is first created.
	PendingManagerApproval

	// ManagerApproved indicates a manager has approved the MO and raw material
	// allocation is the next gate.
	ManagerApproved

	// ManagerRejected indicates a manager rejected the MO. Terminal for this
	// approval cycle.
	ManagerRejected

	// RMAllocationPending indicates the RM store has acknowledged the MO but
	// has not finished reserving material yet.
	RMAllocationPending

	// RMAllocated indicates raw material has been allocated to the MO.
	RMAllocated

	// ReadyForProduction indicates the MO has been released to the shop floor
	// (first batch created).
	ReadyForProduction
)

func getWorkflowStatusStrings() map[WorkflowStatus]string {
	return map[WorkflowStatus]string{
		WorkflowUnknown:        "unknown",
		PendingManagerApproval: "pending_manager_approval",
		ManagerApproved:        "manager_approved",
		ManagerRejected:        "manager_rejected",
		RMAllocationPending:    "rm_allocation_pending",
		RMAllocated:            "rm_allocated",
		ReadyForProduction:     "ready_for_production",
	}
}

// Validate checks if the WorkflowStatus value is valid.
// WorkflowUnknown (0) and any out-of-range values are invalid.
func (s WorkflowStatus) Validate() error {
	if s <= WorkflowUnknown || s > ReadyForProduction {
		return errs.NewValueIsInvalidErrorWithCause("workflow status",
			fmt.Errorf("%d is not a valid workflow status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "pending_manager_approval".
func (s WorkflowStatus) String() string {
	if str, ok := getWorkflowStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s WorkflowStatus) IsTerminal() bool {
	return s == ManagerRejected || s == ReadyForProduction
}

// Approve transitions the status to ManagerApproved.
// Legal only from PendingManagerApproval; any other source state fails with
// an InvalidStateTransitionError and leaves the status for the caller untouched.
func (s WorkflowStatus) Approve() (WorkflowStatus, error) {
	if s != PendingManagerApproval {
		return 0, errs.NewInvalidStateTransitionError("approve", s.String(), PendingManagerApproval.String())
	}
	return ManagerApproved, nil
}

// Reject transitions the status to ManagerRejected.
// Legal only from PendingManagerApproval. Rejection is terminal.
func (s WorkflowStatus) Reject() (WorkflowStatus, error) {
	if s != PendingManagerApproval {
		return 0, errs.NewInvalidStateTransitionError("reject", s.String(), PendingManagerApproval.String())
	}
	return ManagerRejected, nil
}

// AllocateRM transitions the status to RMAllocated.
// Legal from ManagerApproved or RMAllocationPending; skip-ahead calls from any
// earlier or later state fail deterministically.
func (s WorkflowStatus) AllocateRM() (WorkflowStatus, error) {
	if s != ManagerApproved && s != RMAllocationPending {
		return 0, errs.NewInvalidStateTransitionError("allocate RM", s.String(), ManagerApproved.String())
	}
	return RMAllocated, nil
}

// MarkReadyForProduction transitions the status to ReadyForProduction.
// Legal only from RMAllocated.
func (s WorkflowStatus) MarkReadyForProduction() (WorkflowStatus, error) {
	if s != RMAllocated {
		return 0, errs.NewInvalidStateTransitionError("mark ready for production", s.String(), RMAllocated.String())
	}
	return ReadyForProduction, nil
}
