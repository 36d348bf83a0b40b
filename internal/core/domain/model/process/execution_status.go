package process

import (
	"fmt"

	"mestrace/internal/pkg/errs"
)

// ExecutionStatus represents the state of one pipeline step of an MO.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	   │            │
//	   │            ├──> OnHold ──> InProgress
//	   │            └──> Failed
//	   └──> Skipped
type ExecutionStatus int

const (
	ExecutionUnknown ExecutionStatus = iota

	// ExecutionPending is the initial status of every pipeline step.
	ExecutionPending

	// ExecutionInProgress indicates work on the step has started.
	ExecutionInProgress

	// ExecutionCompleted is terminal for a successful step.
	ExecutionCompleted

	// ExecutionOnHold indicates the step is stopped pending a resume.
	ExecutionOnHold

	// ExecutionFailed is terminal for a step abandoned after a defect.
	ExecutionFailed

	// ExecutionSkipped is terminal for a step excluded from the pipeline.
	ExecutionSkipped
)

func getExecutionStatusStrings() map[ExecutionStatus]string {
	return map[ExecutionStatus]string{
		ExecutionUnknown:    "unknown",
		ExecutionPending:    "pending",
		ExecutionInProgress: "in_progress",
		ExecutionCompleted:  "completed",
		ExecutionOnHold:     "on_hold",
		ExecutionFailed:     "failed",
		ExecutionSkipped:    "skipped",
	}
}

// Validate checks if the ExecutionStatus value is valid.
func (s ExecutionStatus) Validate() error {
	if s <= ExecutionUnknown || s > ExecutionSkipped {
		return errs.NewValueIsInvalidErrorWithCause("execution status",
			fmt.Errorf("%d is not a valid execution status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "in_progress".
func (s ExecutionStatus) String() string {
	if str, ok := getExecutionStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Start transitions the status to ExecutionInProgress.
func (s ExecutionStatus) Start() (ExecutionStatus, error) {
	if s != ExecutionPending {
		return 0, errs.NewInvalidStateTransitionError("start process", s.String(), ExecutionPending.String())
	}
	return ExecutionInProgress, nil
}

// Complete transitions the status to ExecutionCompleted.
func (s ExecutionStatus) Complete() (ExecutionStatus, error) {
	if s != ExecutionInProgress {
		return 0, errs.NewInvalidStateTransitionError("complete process", s.String(), ExecutionInProgress.String())
	}
	return ExecutionCompleted, nil
}

// Hold transitions the status to ExecutionOnHold.
func (s ExecutionStatus) Hold() (ExecutionStatus, error) {
	if s != ExecutionInProgress {
		return 0, errs.NewInvalidStateTransitionError("stop process", s.String(), ExecutionInProgress.String())
	}
	return ExecutionOnHold, nil
}

// Resume transitions the status back to ExecutionInProgress after a stop.
func (s ExecutionStatus) Resume() (ExecutionStatus, error) {
	if s != ExecutionOnHold {
		return 0, errs.NewInvalidStateTransitionError("resume process", s.String(), ExecutionOnHold.String())
	}
	return ExecutionInProgress, nil
}

// Fail transitions the status to ExecutionFailed.
func (s ExecutionStatus) Fail() (ExecutionStatus, error) {
	if s != ExecutionInProgress && s != ExecutionOnHold {
		return 0, errs.NewInvalidStateTransitionError("fail process", s.String(), ExecutionInProgress.String())
	}
	return ExecutionFailed, nil
}

// Skip transitions the status to ExecutionSkipped.
func (s ExecutionStatus) Skip() (ExecutionStatus, error) {
	if s != ExecutionPending {
		return 0, errs.NewInvalidStateTransitionError("skip process", s.String(), ExecutionPending.String())
	}
	return ExecutionSkipped, nil
}
