package downtime

import (
	"errors"
	"fmt"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrStopIsNotConstructed is returned when a ProcessStop instance was not
// created through the NewProcessStop factory method.
var ErrStopIsNotConstructed = errors.New(
	"ProcessStop must be created via NewProcessStop constructor")

// StopReason classifies why a pipeline step was stopped.
type StopReason int

const (
	ReasonUnknown StopReason = iota
	ReasonMachineBreakdown
	ReasonMaterialShortage
	ReasonQualityIssue
	ReasonPowerFailure
	ReasonPlannedMaintenance
	ReasonOther
)

func getStopReasonStrings() map[StopReason]string {
	return map[StopReason]string{
		ReasonUnknown:            "unknown",
		ReasonMachineBreakdown:   "machine_breakdown",
		ReasonMaterialShortage:   "material_shortage",
		ReasonQualityIssue:       "quality_issue",
		ReasonPowerFailure:       "power_failure",
		ReasonPlannedMaintenance: "planned_maintenance",
		ReasonOther:              "other",
	}
}

// String returns the wire name of the reason.
func (r StopReason) String() string {
	if str, ok := getStopReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// StopReasonFromString parses the wire name of a stop reason.
func StopReasonFromString(s string) (StopReason, error) {
	for reason, name := range getStopReasonStrings() {
		if reason != ReasonUnknown && name == s {
			return reason, nil
		}
	}
	return ReasonUnknown, errs.NewValueIsInvalidErrorWithCause("stopReason",
		fmt.Errorf("%q is not a valid stop reason", s))
}

// Validate checks if the StopReason value is valid.
func (r StopReason) Validate() error {
	if r <= ReasonUnknown || r > ReasonOther {
		return errs.NewValueIsInvalidErrorWithCause("stopReason",
			fmt.Errorf("%d is not a valid stop reason", r))
	}
	return nil
}

// ProcessStop brackets one unplanned stop of a pipeline step. The downtime in
// whole minutes is derived when the stop is resumed; while the stop is open
// the live downtime is computed against the clock. A stop resumes exactly
// once.
type ProcessStop struct {
	id          kernel.UUID
	executionID kernel.UUID
	reason      StopReason
	remarks     string

	stoppedBy kernel.UUID
	stoppedAt time.Time

	resumedBy       *kernel.UUID
	resumedAt       *time.Time
	downtimeMinutes *int

	guard guard.ConstructorGuard
}

// NewProcessStop opens a stop against a pipeline step.
func NewProcessStop(
	id kernel.UUID,
	executionID kernel.UUID,
	reason StopReason,
	remarks string,
	stoppedBy kernel.UUID,
	stoppedAt time.Time,
) (*ProcessStop, error) {
	s := &ProcessStop{
		remarks:   remarks,
		stoppedAt: stoppedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setExecutionID(executionID),
		s.setReason(reason),
		s.setStoppedBy(stoppedBy),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreProcessStop reconstructs a stop from persistence.
func RestoreProcessStop(
	id kernel.UUID,
	executionID kernel.UUID,
	reason StopReason,
	remarks string,
	stoppedBy kernel.UUID,
	stoppedAt time.Time,
	resumedBy *kernel.UUID,
	resumedAt *time.Time,
	downtimeMinutes *int,
) (*ProcessStop, error) {
	s := &ProcessStop{
		remarks:         remarks,
		stoppedAt:       stoppedAt,
		resumedBy:       resumedBy,
		resumedAt:       resumedAt,
		downtimeMinutes: downtimeMinutes,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setExecutionID(executionID),
		s.setReason(reason),
		s.setStoppedBy(stoppedBy),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the stop was created through one of its constructors.
func (s *ProcessStop) Validate() error {
	if s == nil {
		return ErrStopIsNotConstructed
	}
	return s.guard.Validate(ErrStopIsNotConstructed)
}

func (s *ProcessStop) ID() kernel.UUID {
	return s.id
}

func (s *ProcessStop) ExecutionID() kernel.UUID {
	return s.executionID
}

func (s *ProcessStop) Reason() StopReason {
	return s.reason
}

func (s *ProcessStop) Remarks() string {
	return s.remarks
}

func (s *ProcessStop) StoppedBy() kernel.UUID {
	return s.stoppedBy
}

func (s *ProcessStop) StoppedAt() time.Time {
	return s.stoppedAt
}

func (s *ProcessStop) ResumedBy() *kernel.UUID {
	return s.resumedBy
}

func (s *ProcessStop) ResumedAt() *time.Time {
	return s.resumedAt
}

// DowntimeMinutes returns the recorded downtime, nil while the stop is open.
func (s *ProcessStop) DowntimeMinutes() *int {
	return s.downtimeMinutes
}

// IsResolved reports whether the stop has been resumed.
func (s *ProcessStop) IsResolved() bool {
	return s.resumedAt != nil
}

// Resume closes the stop and records the downtime in whole minutes, rounding
// down. A second resume is rejected.
func (s *ProcessStop) Resume(by kernel.UUID, at time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("resumedBy", err)
	}
	if s.IsResolved() {
		return errs.NewInvalidStateTransitionError("resume process", "resumed", "stopped")
	}
	if at.Before(s.stoppedAt) {
		return errs.NewValueIsInvalidError("resumedAt")
	}

	minutes := floorMinutes(at.Sub(s.stoppedAt))
	s.resumedBy = &by
	s.resumedAt = &at
	s.downtimeMinutes = &minutes
	return nil
}

// CurrentDowntimeMinutes returns the recorded downtime for a resolved stop,
// or the live downtime against now for an open one.
func (s *ProcessStop) CurrentDowntimeMinutes(now time.Time) int {
	if s.downtimeMinutes != nil {
		return *s.downtimeMinutes
	}
	if now.Before(s.stoppedAt) {
		return 0
	}
	return floorMinutes(now.Sub(s.stoppedAt))
}

func floorMinutes(d time.Duration) int {
	return int(d / time.Minute)
}

func (s *ProcessStop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	s.id = id
	return nil
}

func (s *ProcessStop) setExecutionID(executionID kernel.UUID) error {
	if err := executionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("executionID", err)
	}
	s.executionID = executionID
	return nil
}

func (s *ProcessStop) setReason(reason StopReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	s.reason = reason
	return nil
}

func (s *ProcessStop) setStoppedBy(stoppedBy kernel.UUID) error {
	if err := stoppedBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("stoppedBy", err)
	}
	s.stoppedBy = stoppedBy
	return nil
}
