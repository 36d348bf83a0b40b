package rework

import (
	"errors"
	"fmt"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrReworkBatchIsNotConstructed is returned when a ReworkBatch instance was
// not created through the NewReworkBatch factory method.
var ErrReworkBatchIsNotConstructed = errors.New(
	"ReworkBatch must be created via NewReworkBatch constructor")

// Status represents the lifecycle of a rework job.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusInProgress: "in_progress",
		StatusCompleted:  "completed",
		StatusCancelled:  "cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("rework status",
			fmt.Errorf("%d is not a valid rework status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Source identifies who flagged the defect that created a rework job.
type Source int

const (
	SourceUnknown Source = iota
	SourceProcessSupervisor
	SourceFinalInspection
	SourceQualityCheck
)

// String returns the wire name of the source.
func (s Source) String() string {
	switch s {
	case SourceProcessSupervisor:
		return "process_supervisor"
	case SourceFinalInspection:
		return "final_inspection"
	case SourceQualityCheck:
		return "quality_check"
	}
	return "unknown"
}

// Validate checks if the Source value is valid.
func (s Source) Validate() error {
	if s <= SourceUnknown || s > SourceQualityCheck {
		return errs.NewValueIsInvalidErrorWithCause("rework source",
			fmt.Errorf("%d is not a valid rework source", s))
	}
	return nil
}

// ReworkBatch is one rework job created when a process completion routes
// quantity to rework. Completing the job splits the rework quantity into OK
// and scrap; there is no rework-of-rework.
type ReworkBatch struct {
	id                 kernel.UUID
	batchID            kernel.UUID
	executionID        kernel.UUID
	parentCompletionID kernel.UUID

	quantity           kernel.Quantity
	source             Source
	assignedSupervisor kernel.UUID
	cycleNumber        int
	defectDescription  string

	status      Status
	createdAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewReworkBatch creates a pending rework job for the quantity a completion
// routed to rework.
func NewReworkBatch(
	id kernel.UUID,
	batchID kernel.UUID,
	executionID kernel.UUID,
	parentCompletionID kernel.UUID,
	quantity kernel.Quantity,
	source Source,
	assignedSupervisor kernel.UUID,
	cycleNumber int,
	defectDescription string,
	createdAt time.Time,
) (*ReworkBatch, error) {
	r := &ReworkBatch{
		status:    StatusPending,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setBatchID(batchID),
		r.setExecutionID(executionID),
		r.setParentCompletionID(parentCompletionID),
		r.setQuantity(quantity),
		r.setSource(source),
		r.setAssignedSupervisor(assignedSupervisor),
		r.setCycleNumber(cycleNumber),
		r.setDefectDescription(defectDescription),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreReworkBatch reconstructs a rework job from persistence.
func RestoreReworkBatch(
	id kernel.UUID,
	batchID kernel.UUID,
	executionID kernel.UUID,
	parentCompletionID kernel.UUID,
	quantity kernel.Quantity,
	source Source,
	assignedSupervisor kernel.UUID,
	cycleNumber int,
	defectDescription string,
	status Status,
	createdAt time.Time,
	startedAt, completedAt *time.Time,
) (*ReworkBatch, error) {
	r := &ReworkBatch{
		createdAt:   createdAt,
		startedAt:   startedAt,
		completedAt: completedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setBatchID(batchID),
		r.setExecutionID(executionID),
		r.setParentCompletionID(parentCompletionID),
		r.setQuantity(quantity),
		r.setSource(source),
		r.setAssignedSupervisor(assignedSupervisor),
		r.setCycleNumber(cycleNumber),
		r.setDefectDescription(defectDescription),
		r.setStatus(status),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the rework job was created through one of its constructors.
func (r *ReworkBatch) Validate() error {
	if r == nil {
		return ErrReworkBatchIsNotConstructed
	}
	return r.guard.Validate(ErrReworkBatchIsNotConstructed)
}

func (r *ReworkBatch) ID() kernel.UUID {
	return r.id
}

func (r *ReworkBatch) BatchID() kernel.UUID {
	return r.batchID
}

func (r *ReworkBatch) ExecutionID() kernel.UUID {
	return r.executionID
}

// ParentCompletionID returns the completion that routed quantity here.
func (r *ReworkBatch) ParentCompletionID() kernel.UUID {
	return r.parentCompletionID
}

func (r *ReworkBatch) Quantity() kernel.Quantity {
	return r.quantity
}

func (r *ReworkBatch) Source() Source {
	return r.source
}

func (r *ReworkBatch) AssignedSupervisor() kernel.UUID {
	return r.assignedSupervisor
}

// CycleNumber returns which rework cycle this job is, starting at 1.
func (r *ReworkBatch) CycleNumber() int {
	return r.cycleNumber
}

func (r *ReworkBatch) DefectDescription() string {
	return r.defectDescription
}

func (r *ReworkBatch) Status() Status {
	return r.status
}

func (r *ReworkBatch) CreatedAt() time.Time {
	return r.createdAt
}

func (r *ReworkBatch) StartedAt() *time.Time {
	return r.startedAt
}

func (r *ReworkBatch) CompletedAt() *time.Time {
	return r.completedAt
}

// Start moves the job to in progress.
func (r *ReworkBatch) Start(at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.status != StatusPending {
		return errs.NewInvalidStateTransitionError("start rework",
			r.status.String(), StatusPending.String())
	}
	r.status = StatusInProgress
	r.startedAt = &at
	return nil
}

// Complete closes the job with the OK/scrap split of the reworked quantity
// and returns the completion row to persist. The split must conserve the
// rework quantity; nothing may be routed to rework again.
func (r *ReworkBatch) Complete(
	completionID kernel.UUID,
	completedBy kernel.UUID,
	okQuantity, scrapQuantity kernel.Quantity,
	remarks string,
	at time.Time,
) (*BatchProcessCompletion, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.status != StatusInProgress {
		return nil, errs.NewInvalidStateTransitionError("complete rework",
			r.status.String(), StatusInProgress.String())
	}

	completion, err := NewReworkCycleCompletion(
		completionID, r.batchID, r.executionID, completedBy,
		r.quantity, okQuantity, scrapQuantity,
		r.cycleNumber, r.parentCompletionID, remarks, at,
	)
	if err != nil {
		return nil, err
	}

	r.status = StatusCompleted
	r.completedAt = &at
	return completion, nil
}

// Cancel abandons a job that has not completed.
func (r *ReworkBatch) Cancel() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.status != StatusPending && r.status != StatusInProgress {
		return errs.NewInvalidStateTransitionError("cancel rework",
			r.status.String(), StatusPending.String())
	}
	r.status = StatusCancelled
	return nil
}

func (r *ReworkBatch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	r.id = id
	return nil
}

func (r *ReworkBatch) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("batchID", err)
	}
	r.batchID = batchID
	return nil
}

func (r *ReworkBatch) setExecutionID(executionID kernel.UUID) error {
	if err := executionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("executionID", err)
	}
	r.executionID = executionID
	return nil
}

func (r *ReworkBatch) setParentCompletionID(parentCompletionID kernel.UUID) error {
	if err := parentCompletionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("parentCompletionID", err)
	}
	r.parentCompletionID = parentCompletionID
	return nil
}

func (r *ReworkBatch) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidError("quantity")
	}
	r.quantity = quantity
	return nil
}

func (r *ReworkBatch) setSource(source Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	r.source = source
	return nil
}

func (r *ReworkBatch) setAssignedSupervisor(assignedSupervisor kernel.UUID) error {
	if err := assignedSupervisor.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("assignedSupervisor", err)
	}
	r.assignedSupervisor = assignedSupervisor
	return nil
}

func (r *ReworkBatch) setCycleNumber(cycleNumber int) error {
	if cycleNumber < 1 || cycleNumber > maxReworkCycles {
		return errs.NewValueIsOutOfRangeError("cycleNumber", cycleNumber, 1, maxReworkCycles)
	}
	r.cycleNumber = cycleNumber
	return nil
}

func (r *ReworkBatch) setDefectDescription(defectDescription string) error {
	if defectDescription == "" {
		return errs.NewValueIsRequiredError("defectDescription")
	}
	r.defectDescription = defectDescription
	return nil
}

func (r *ReworkBatch) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
