package batch

import (
	"fmt"

	"mestrace/internal/pkg/errs"
)

// Status represents the lifecycle state of a production batch.
//
// State transitions:
//
//	Created ──> RMAllocated ──> InProcess ──> Completed
//	   │             │              │
//	   │             │              ├──> OnHold ──> InProcess
//	   └─────────────┴──────────────┴──> Cancelled
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the initial status when a batch is split from its MO.
	Created

	// RMAllocated indicates raw material has been allocated and the batch is
	// bound to a process awaiting receipt.
	RMAllocated

	// InProcess indicates an operator has received the batch and processing
	// has started.
	InProcess

	// Completed indicates the batch finished its pipeline pass.
	Completed

	// Cancelled is terminal; the batch will not be produced.
	Cancelled

	// OnHold indicates the batch is parked pending issue resolution.
	OnHold
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Created:     "created",
		RMAllocated: "rm_allocated",
		InProcess:   "in_process",
		Completed:   "completed",
		Cancelled:   "cancelled",
		OnHold:      "on_hold",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s <= Unknown || s > OnHold {
		return errs.NewValueIsInvalidErrorWithCause("batch status",
			fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "rm_allocated".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// AllocateRM transitions the status to RMAllocated.
// Legal from Created and, idempotently, from RMAllocated: the batch status
// always mirrors its most recent allocation, and re-allocating a batch that
// has not yet been received simply re-stamps the same state.
func (s Status) AllocateRM() (Status, error) {
	if s != Created && s != RMAllocated {
		return 0, errs.NewInvalidStateTransitionError("allocate batch", s.String(), Created.String())
	}
	return RMAllocated, nil
}

// Start transitions the status to InProcess. Legal from RMAllocated, or from
// OnHold when a cleared batch returns to the work queue.
func (s Status) Start() (Status, error) {
	if s != RMAllocated && s != OnHold {
		return 0, errs.NewInvalidStateTransitionError("start batch", s.String(), RMAllocated.String())
	}
	return InProcess, nil
}

// Complete transitions the status to Completed. Legal only from InProcess.
func (s Status) Complete() (Status, error) {
	if s != InProcess {
		return 0, errs.NewInvalidStateTransitionError("complete batch", s.String(), InProcess.String())
	}
	return Completed, nil
}

// Hold transitions the status to OnHold. Legal from RMAllocated or InProcess.
func (s Status) Hold() (Status, error) {
	if s != RMAllocated && s != InProcess {
		return 0, errs.NewInvalidStateTransitionError("hold batch", s.String(), InProcess.String())
	}
	return OnHold, nil
}

// Release transitions the status from OnHold back to InProcess.
func (s Status) Release() (Status, error) {
	if s != OnHold {
		return 0, errs.NewInvalidStateTransitionError("release batch", s.String(), OnHold.String())
	}
	return InProcess, nil
}

// Cancel transitions the status to Cancelled. Completed and already cancelled
// batches cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if s == Completed || s == Cancelled || s == Unknown {
		return 0, errs.NewInvalidStateTransitionError("cancel batch", s.String(), Created.String())
	}
	return Cancelled, nil
}
