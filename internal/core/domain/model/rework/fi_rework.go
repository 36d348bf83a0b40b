package rework

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrFIReworkIsNotConstructed is returned when a FinalInspectionRework
// instance was not created through one of its factory methods.
var ErrFIReworkIsNotConstructed = errors.New(
	"FinalInspectionRework must be created via NewFinalInspectionRework constructor")

// FinalInspectionRework is one cycle of the final-inspection rework loop:
// the inspector flags the upstream step that caused the defect and routes the
// quantity back to that step's supervisor. Completion means awaiting
// re-inspection; a failed re-inspection opens a new cycle with an incremented
// count and leaves this row untouched. The cycle count is this loop's own
// counter, unrelated to in-process rework cycle numbers.
type FinalInspectionRework struct {
	id      kernel.UUID
	batchID kernel.UUID

	defectiveExecutionID kernel.UUID
	defectiveSupervisor  kernel.UUID

	quantity          kernel.Quantity
	defectDescription string
	reworkCycleCount  int

	status    Status
	createdBy kernel.UUID
	createdAt time.Time

	startedAt   *time.Time
	completedAt *time.Time

	reinspectionPassed *bool
	reinspectedBy      *kernel.UUID
	reinspectedAt      *time.Time

	guard guard.ConstructorGuard
}

// NewFinalInspectionRework opens a rework cycle against the step that caused
// the defect. The first cycle carries count 1; a cycle opened after a failed
// re-inspection carries the prior count plus one.
func NewFinalInspectionRework(
	id kernel.UUID,
	batchID kernel.UUID,
	defectiveExecutionID kernel.UUID,
	defectiveSupervisor kernel.UUID,
	quantity kernel.Quantity,
	defectDescription string,
	reworkCycleCount int,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*FinalInspectionRework, error) {
	f := &FinalInspectionRework{
		status:    StatusPending,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		f.setID(id),
		f.setBatchID(batchID),
		f.setDefectiveExecutionID(defectiveExecutionID),
		f.setDefectiveSupervisor(defectiveSupervisor),
		f.setQuantity(quantity),
		f.setDefectDescription(defectDescription),
		f.setReworkCycleCount(reworkCycleCount),
		f.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return f, nil
}

// RestoreFinalInspectionRework reconstructs a cycle from persistence.
func RestoreFinalInspectionRework(
	id kernel.UUID,
	batchID kernel.UUID,
	defectiveExecutionID kernel.UUID,
	defectiveSupervisor kernel.UUID,
	quantity kernel.Quantity,
	defectDescription string,
	reworkCycleCount int,
	status Status,
	createdBy kernel.UUID,
	createdAt time.Time,
	startedAt, completedAt *time.Time,
	reinspectionPassed *bool,
	reinspectedBy *kernel.UUID,
	reinspectedAt *time.Time,
) (*FinalInspectionRework, error) {
	f := &FinalInspectionRework{
		createdAt:          createdAt,
		startedAt:          startedAt,
		completedAt:        completedAt,
		reinspectionPassed: reinspectionPassed,
		reinspectedBy:      reinspectedBy,
		reinspectedAt:      reinspectedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		f.setID(id),
		f.setBatchID(batchID),
		f.setDefectiveExecutionID(defectiveExecutionID),
		f.setDefectiveSupervisor(defectiveSupervisor),
		f.setQuantity(quantity),
		f.setDefectDescription(defectDescription),
		f.setReworkCycleCount(reworkCycleCount),
		f.setCreatedBy(createdBy),
		f.setStatus(status),
	); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate ensures the cycle was created through one of its constructors.
func (f *FinalInspectionRework) Validate() error {
	if f == nil {
		return ErrFIReworkIsNotConstructed
	}
	return f.guard.Validate(ErrFIReworkIsNotConstructed)
}

func (f *FinalInspectionRework) ID() kernel.UUID {
	return f.id
}

func (f *FinalInspectionRework) BatchID() kernel.UUID {
	return f.batchID
}

// DefectiveExecutionID returns the upstream step blamed for the defect.
func (f *FinalInspectionRework) DefectiveExecutionID() kernel.UUID {
	return f.defectiveExecutionID
}

// DefectiveSupervisor returns the supervisor the quantity was routed to.
func (f *FinalInspectionRework) DefectiveSupervisor() kernel.UUID {
	return f.defectiveSupervisor
}

func (f *FinalInspectionRework) Quantity() kernel.Quantity {
	return f.quantity
}

func (f *FinalInspectionRework) DefectDescription() string {
	return f.defectDescription
}

// ReworkCycleCount returns which final-inspection cycle this row is,
// starting at 1.
func (f *FinalInspectionRework) ReworkCycleCount() int {
	return f.reworkCycleCount
}

func (f *FinalInspectionRework) Status() Status {
	return f.status
}

func (f *FinalInspectionRework) CreatedBy() kernel.UUID {
	return f.createdBy
}

func (f *FinalInspectionRework) CreatedAt() time.Time {
	return f.createdAt
}

func (f *FinalInspectionRework) StartedAt() *time.Time {
	return f.startedAt
}

func (f *FinalInspectionRework) CompletedAt() *time.Time {
	return f.completedAt
}

// ReinspectionPassed returns the re-inspection verdict, nil while the cycle
// has not been re-inspected.
func (f *FinalInspectionRework) ReinspectionPassed() *bool {
	return f.reinspectionPassed
}

func (f *FinalInspectionRework) ReinspectedBy() *kernel.UUID {
	return f.reinspectedBy
}

func (f *FinalInspectionRework) ReinspectedAt() *time.Time {
	return f.reinspectedAt
}

// Start moves the cycle to in progress.
func (f *FinalInspectionRework) Start(at time.Time) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.status != StatusPending {
		return errs.NewInvalidStateTransitionError("start final inspection rework",
			f.status.String(), StatusPending.String())
	}
	f.status = StatusInProgress
	f.startedAt = &at
	return nil
}

// Complete marks the rework done and awaiting re-inspection. The cycle is not
// resolved until the inspector records a verdict.
func (f *FinalInspectionRework) Complete(at time.Time) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.status != StatusInProgress {
		return errs.NewInvalidStateTransitionError("complete final inspection rework",
			f.status.String(), StatusInProgress.String())
	}
	f.status = StatusCompleted
	f.completedAt = &at
	return nil
}

// RecordReinspection stores the inspector's verdict on a completed cycle.
// A verdict is recorded exactly once; a failed verdict freezes this row and
// the caller opens the next cycle via NextCycle.
func (f *FinalInspectionRework) RecordReinspection(by kernel.UUID, passed bool, at time.Time) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("reinspectedBy", err)
	}
	if f.status != StatusCompleted || f.reinspectionPassed != nil {
		return errs.NewInvalidStateTransitionError("reinspect",
			f.reinspectionState(), "completed and awaiting re-inspection")
	}
	f.reinspectionPassed = &passed
	f.reinspectedBy = &by
	f.reinspectedAt = &at
	return nil
}

// NextCycle opens the follow-up cycle after a failed re-inspection, carrying
// count+1 and the same routing.
func (f *FinalInspectionRework) NextCycle(
	id kernel.UUID,
	createdBy kernel.UUID,
	defectDescription string,
	at time.Time,
) (*FinalInspectionRework, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.reinspectionPassed == nil || *f.reinspectionPassed {
		return nil, errs.NewInvalidStateTransitionError("open next rework cycle",
			f.reinspectionState(), "failed re-inspection")
	}
	return NewFinalInspectionRework(
		id, f.batchID, f.defectiveExecutionID, f.defectiveSupervisor,
		f.quantity, defectDescription, f.reworkCycleCount+1, createdBy, at,
	)
}

func (f *FinalInspectionRework) reinspectionState() string {
	if f.reinspectionPassed != nil {
		if *f.reinspectionPassed {
			return "re-inspection passed"
		}
		return "re-inspection failed"
	}
	return f.status.String()
}

func (f *FinalInspectionRework) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	f.id = id
	return nil
}

func (f *FinalInspectionRework) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("batchID", err)
	}
	f.batchID = batchID
	return nil
}

func (f *FinalInspectionRework) setDefectiveExecutionID(executionID kernel.UUID) error {
	if err := executionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("defectiveExecutionID", err)
	}
	f.defectiveExecutionID = executionID
	return nil
}

func (f *FinalInspectionRework) setDefectiveSupervisor(supervisorID kernel.UUID) error {
	if err := supervisorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("defectiveSupervisor", err)
	}
	f.defectiveSupervisor = supervisorID
	return nil
}

func (f *FinalInspectionRework) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidError("quantity")
	}
	f.quantity = quantity
	return nil
}

func (f *FinalInspectionRework) setDefectDescription(defectDescription string) error {
	if defectDescription == "" {
		return errs.NewValueIsRequiredError("defectDescription")
	}
	f.defectDescription = defectDescription
	return nil
}

func (f *FinalInspectionRework) setReworkCycleCount(count int) error {
	if count < 1 || count > maxReworkCycles {
		return errs.NewValueIsOutOfRangeError("reworkCycleCount", count, 1, maxReworkCycles)
	}
	f.reworkCycleCount = count
	return nil
}

func (f *FinalInspectionRework) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("createdBy", err)
	}
	f.createdBy = createdBy
	return nil
}

func (f *FinalInspectionRework) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	f.status = status
	return nil
}
