package process

import (
	"errors"
	"fmt"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when a ProcessAssignment instance
// was not created through one of its factory methods.
var ErrAssignmentIsNotConstructed = errors.New(
	"ProcessAssignment must be created via NewProcessAssignment constructor")

// AssignmentStatus represents the state of one operator assignment record.
//
// The assignment history is append-only: a reassignment never rewrites the
// operator on an existing record, it closes the record as AssignmentReassigned
// and a new record takes over.
type AssignmentStatus int

const (
	AssignmentUnknown AssignmentStatus = iota
	AssignmentAssigned
	AssignmentAccepted
	AssignmentInProgress
	AssignmentCompleted
	AssignmentReassigned
	AssignmentCancelled
)

func getAssignmentStatusStrings() map[AssignmentStatus]string {
	return map[AssignmentStatus]string{
		AssignmentUnknown:    "unknown",
		AssignmentAssigned:   "assigned",
		AssignmentAccepted:   "accepted",
		AssignmentInProgress: "in_progress",
		AssignmentCompleted:  "completed",
		AssignmentReassigned: "reassigned",
		AssignmentCancelled:  "cancelled",
	}
}

// Validate checks if the AssignmentStatus value is valid.
func (s AssignmentStatus) Validate() error {
	if s <= AssignmentUnknown || s > AssignmentCancelled {
		return errs.NewValueIsInvalidErrorWithCause("assignment status",
			fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "reassigned".
func (s AssignmentStatus) String() string {
	if str, ok := getAssignmentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsClosed reports whether the record can no longer change.
func (s AssignmentStatus) IsClosed() bool {
	return s == AssignmentCompleted || s == AssignmentReassigned || s == AssignmentCancelled
}

// ProcessAssignment is one record in the append-only operator history of a
// pipeline step. A record created by a reassignment carries the operator it
// replaced.
type ProcessAssignment struct {
	id          kernel.UUID
	executionID kernel.UUID
	operatorID  kernel.UUID
	assignedBy  kernel.UUID
	status      AssignmentStatus

	previousOperator *kernel.UUID
	reassignReason   string

	assignedAt time.Time
	closedAt   *time.Time

	guard guard.ConstructorGuard
}

// NewProcessAssignment creates the initial assignment of an operator to a
// pipeline step.
func NewProcessAssignment(
	id kernel.UUID,
	executionID kernel.UUID,
	operatorID kernel.UUID,
	assignedBy kernel.UUID,
	assignedAt time.Time,
) (*ProcessAssignment, error) {
	a := &ProcessAssignment{
		status:     AssignmentAssigned,
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setExecutionID(executionID),
		a.setOperatorID(operatorID),
		a.setAssignedBy(assignedBy),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// NewReassignment creates the replacement record of a reassignment, keeping a
// reference to the operator it replaces. The replaced record must be closed
// separately via MarkReassigned inside the same transaction.
func NewReassignment(
	id kernel.UUID,
	executionID kernel.UUID,
	operatorID kernel.UUID,
	assignedBy kernel.UUID,
	previousOperator kernel.UUID,
	assignedAt time.Time,
) (*ProcessAssignment, error) {
	a, err := NewProcessAssignment(id, executionID, operatorID, assignedBy, assignedAt)
	if err != nil {
		return nil, err
	}
	if err := previousOperator.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("previousOperator", err)
	}
	a.previousOperator = &previousOperator
	return a, nil
}

// RestoreProcessAssignment reconstructs an assignment record from persistence.
func RestoreProcessAssignment(
	id kernel.UUID,
	executionID kernel.UUID,
	operatorID kernel.UUID,
	assignedBy kernel.UUID,
	status AssignmentStatus,
	previousOperator *kernel.UUID,
	reassignReason string,
	assignedAt time.Time,
	closedAt *time.Time,
) (*ProcessAssignment, error) {
	a := &ProcessAssignment{
		previousOperator: previousOperator,
		reassignReason:   reassignReason,
		assignedAt:       assignedAt,
		closedAt:         closedAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setExecutionID(executionID),
		a.setOperatorID(operatorID),
		a.setAssignedBy(assignedBy),
		a.setStatus(status),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the assignment was created through one of its constructors.
func (a *ProcessAssignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// IsEqual compares two assignments by their unique identifiers.
func (a *ProcessAssignment) IsEqual(other *ProcessAssignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

func (a *ProcessAssignment) ID() kernel.UUID {
	return a.id
}

func (a *ProcessAssignment) ExecutionID() kernel.UUID {
	return a.executionID
}

func (a *ProcessAssignment) OperatorID() kernel.UUID {
	return a.operatorID
}

func (a *ProcessAssignment) AssignedBy() kernel.UUID {
	return a.assignedBy
}

func (a *ProcessAssignment) Status() AssignmentStatus {
	return a.status
}

// PreviousOperator returns the operator this record replaced, nil for an
// initial assignment.
func (a *ProcessAssignment) PreviousOperator() *kernel.UUID {
	return a.previousOperator
}

// ReassignReason returns why this record was closed by a reassignment, empty
// while the record is open.
func (a *ProcessAssignment) ReassignReason() string {
	return a.reassignReason
}

func (a *ProcessAssignment) AssignedAt() time.Time {
	return a.assignedAt
}

func (a *ProcessAssignment) ClosedAt() *time.Time {
	return a.closedAt
}

// Accept acknowledges the assignment.
func (a *ProcessAssignment) Accept() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status != AssignmentAssigned {
		return errs.NewInvalidStateTransitionError("accept assignment",
			a.status.String(), AssignmentAssigned.String())
	}
	a.status = AssignmentAccepted
	return nil
}

// Start marks the operator as working the step.
func (a *ProcessAssignment) Start() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status != AssignmentAssigned && a.status != AssignmentAccepted {
		return errs.NewInvalidStateTransitionError("start assignment",
			a.status.String(), AssignmentAccepted.String())
	}
	a.status = AssignmentInProgress
	return nil
}

// Complete closes the record when the step finishes under this operator.
func (a *ProcessAssignment) Complete(at time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status != AssignmentInProgress {
		return errs.NewInvalidStateTransitionError("complete assignment",
			a.status.String(), AssignmentInProgress.String())
	}
	a.status = AssignmentCompleted
	a.closedAt = &at
	return nil
}

// MarkReassigned closes the record because another operator took over.
// Legal while the record is still open; completed and cancelled records stay
// untouched.
func (a *ProcessAssignment) MarkReassigned(reason string, at time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if a.status.IsClosed() {
		return errs.NewInvalidStateTransitionError("reassign operator",
			a.status.String(), AssignmentInProgress.String())
	}
	a.status = AssignmentReassigned
	a.reassignReason = reason
	a.closedAt = &at
	return nil
}

// Cancel closes an open record without a successor.
func (a *ProcessAssignment) Cancel(at time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.status.IsClosed() {
		return errs.NewInvalidStateTransitionError("cancel assignment",
			a.status.String(), AssignmentAssigned.String())
	}
	a.status = AssignmentCancelled
	a.closedAt = &at
	return nil
}

func (a *ProcessAssignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	a.id = id
	return nil
}

func (a *ProcessAssignment) setExecutionID(executionID kernel.UUID) error {
	if err := executionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("executionID", err)
	}
	a.executionID = executionID
	return nil
}

func (a *ProcessAssignment) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("operatorID", err)
	}
	a.operatorID = operatorID
	return nil
}

func (a *ProcessAssignment) setAssignedBy(assignedBy kernel.UUID) error {
	if err := assignedBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("assignedBy", err)
	}
	a.assignedBy = assignedBy
	return nil
}

func (a *ProcessAssignment) setStatus(status AssignmentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}
