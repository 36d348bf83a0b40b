package process

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrExecutionIsNotConstructed is returned when a ProcessExecution instance
// was not created through the NewProcessExecution factory method.
var ErrExecutionIsNotConstructed = errors.New(
	"ProcessExecution must be created via NewProcessExecution constructor")

// ProcessExecution is one pipeline step of an MO: a (MO, process) pair with a
// position in the pipeline. It mirrors the currently assigned operator from
// the append-only assignment history so the active crew is readable without a
// join.
type ProcessExecution struct {
	id            kernel.UUID
	moID          kernel.UUID
	processCode   string
	processName   string
	sequenceOrder int
	status        ExecutionStatus

	assignedOperator   *kernel.UUID
	assignedSupervisor *kernel.UUID

	actualStart *time.Time
	actualEnd   *time.Time

	guard guard.ConstructorGuard
}

// NewProcessExecution creates a pending pipeline step.
//
// Business rules:
//   - ID and MO ID must be valid
//   - Process code cannot be empty
//   - Sequence order must be positive
func NewProcessExecution(
	id kernel.UUID,
	moID kernel.UUID,
	processCode string,
	processName string,
	sequenceOrder int,
) (*ProcessExecution, error) {
	e := &ProcessExecution{
		processName: processName,
		status:      ExecutionPending,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setMOID(moID),
		e.setProcessCode(processCode),
		e.setSequenceOrder(sequenceOrder),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreProcessExecution reconstructs a pipeline step from persistence.
func RestoreProcessExecution(
	id kernel.UUID,
	moID kernel.UUID,
	processCode string,
	processName string,
	sequenceOrder int,
	status ExecutionStatus,
	assignedOperator, assignedSupervisor *kernel.UUID,
	actualStart, actualEnd *time.Time,
) (*ProcessExecution, error) {
	e := &ProcessExecution{
		processName:        processName,
		assignedOperator:   assignedOperator,
		assignedSupervisor: assignedSupervisor,
		actualStart:        actualStart,
		actualEnd:          actualEnd,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setMOID(moID),
		e.setProcessCode(processCode),
		e.setSequenceOrder(sequenceOrder),
		e.setStatus(status),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate ensures the execution was created through one of its constructors.
func (e *ProcessExecution) Validate() error {
	if e == nil {
		return ErrExecutionIsNotConstructed
	}
	return e.guard.Validate(ErrExecutionIsNotConstructed)
}

// IsEqual compares two executions by their unique identifiers.
func (e *ProcessExecution) IsEqual(other *ProcessExecution) bool {
	return other != nil && e.id.IsEqual(other.id)
}

func (e *ProcessExecution) ID() kernel.UUID {
	return e.id
}

func (e *ProcessExecution) MOID() kernel.UUID {
	return e.moID
}

// ProcessCode returns the process definition code, e.g. "CNC-TURN".
func (e *ProcessExecution) ProcessCode() string {
	return e.processCode
}

func (e *ProcessExecution) ProcessName() string {
	return e.processName
}

// SequenceOrder returns the 1-based position of the step in the pipeline.
func (e *ProcessExecution) SequenceOrder() int {
	return e.sequenceOrder
}

func (e *ProcessExecution) Status() ExecutionStatus {
	return e.status
}

// AssignedOperator returns the operator currently mirrored from the
// assignment history, nil when nobody is assigned.
func (e *ProcessExecution) AssignedOperator() *kernel.UUID {
	return e.assignedOperator
}

func (e *ProcessExecution) AssignedSupervisor() *kernel.UUID {
	return e.assignedSupervisor
}

func (e *ProcessExecution) ActualStart() *time.Time {
	return e.actualStart
}

func (e *ProcessExecution) ActualEnd() *time.Time {
	return e.actualEnd
}

// MirrorOperator updates the operator mirror after an assignment or
// reassignment. Not allowed once the step reached a terminal state.
func (e *ProcessExecution) MirrorOperator(operatorID kernel.UUID) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := operatorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("operatorID", err)
	}
	if e.isTerminal() {
		return errs.NewInvalidStateTransitionError("assign operator",
			e.status.String(), ExecutionPending.String())
	}
	e.assignedOperator = &operatorID
	return nil
}

// MirrorSupervisor updates the supervisor mirror.
func (e *ProcessExecution) MirrorSupervisor(supervisorID kernel.UUID) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := supervisorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("supervisorID", err)
	}
	if e.isTerminal() {
		return errs.NewInvalidStateTransitionError("assign supervisor",
			e.status.String(), ExecutionPending.String())
	}
	e.assignedSupervisor = &supervisorID
	return nil
}

// Start marks the step in progress and stamps the actual start on the first
// transition only.
func (e *ProcessExecution) Start(at time.Time) error {
	if err := e.Validate(); err != nil {
		return err
	}
	status, err := e.status.Start()
	if err != nil {
		return err
	}
	e.status = status
	if e.actualStart == nil {
		e.actualStart = &at
	}
	return nil
}

// Complete marks the step completed and stamps the actual end.
func (e *ProcessExecution) Complete(at time.Time) error {
	if err := e.Validate(); err != nil {
		return err
	}
	status, err := e.status.Complete()
	if err != nil {
		return err
	}
	e.status = status
	e.actualEnd = &at
	return nil
}

// Hold parks the step after a stop was recorded against it.
func (e *ProcessExecution) Hold() error {
	if err := e.Validate(); err != nil {
		return err
	}
	status, err := e.status.Hold()
	if err != nil {
		return err
	}
	e.status = status
	return nil
}

// Resume returns a held step to in progress.
func (e *ProcessExecution) Resume() error {
	if err := e.Validate(); err != nil {
		return err
	}
	status, err := e.status.Resume()
	if err != nil {
		return err
	}
	e.status = status
	return nil
}

// Fail abandons the step.
func (e *ProcessExecution) Fail() error {
	if err := e.Validate(); err != nil {
		return err
	}
	status, err := e.status.Fail()
	if err != nil {
		return err
	}
	e.status = status
	return nil
}

// Skip excludes a pending step from the pipeline.
func (e *ProcessExecution) Skip() error {
	if err := e.Validate(); err != nil {
		return err
	}
	status, err := e.status.Skip()
	if err != nil {
		return err
	}
	e.status = status
	return nil
}

func (e *ProcessExecution) isTerminal() bool {
	return e.status == ExecutionCompleted || e.status == ExecutionFailed || e.status == ExecutionSkipped
}

func (e *ProcessExecution) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	e.id = id
	return nil
}

func (e *ProcessExecution) setMOID(moID kernel.UUID) error {
	if err := moID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("moID", err)
	}
	e.moID = moID
	return nil
}

func (e *ProcessExecution) setProcessCode(processCode string) error {
	if processCode == "" {
		return errs.NewValueIsRequiredError("processCode")
	}
	e.processCode = processCode
	return nil
}

func (e *ProcessExecution) setSequenceOrder(sequenceOrder int) error {
	if sequenceOrder < 1 {
		return errs.NewValueIsOutOfRangeError("sequenceOrder", sequenceOrder, 1, maxSequenceOrder)
	}
	e.sequenceOrder = sequenceOrder
	return nil
}

func (e *ProcessExecution) setStatus(status ExecutionStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	e.status = status
	return nil
}

const maxSequenceOrder = 1000
