package batch

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrFGVerificationIsNotConstructed is returned when a FinishedGoodsVerification
// was not created via NewFinishedGoodsVerification.
var ErrFGVerificationIsNotConstructed = errors.New(
	"FinishedGoodsVerification must be created via NewFinishedGoodsVerification constructor")

// FGStatus represents the verification state of a completed batch's finished goods.
type FGStatus int

const (
	FGUnknown FGStatus = iota
	FGPendingVerification
	FGQualityCheckPassed
	FGQualityCheckFailed
	FGApprovedForDispatch
	FGDispatched
)

func (s FGStatus) String() string {
	switch s {
	case FGPendingVerification:
		return "pending_verification"
	case FGQualityCheckPassed:
		return "quality_check_passed"
	case FGQualityCheckFailed:
		return "quality_check_failed"
	case FGApprovedForDispatch:
		return "approved_for_dispatch"
	case FGDispatched:
		return "dispatched"
	}
	return "unknown"
}

// Validate checks if the FGStatus value is valid.
func (s FGStatus) Validate() error {
	if s <= FGUnknown || s > FGDispatched {
		return errs.NewValueIsInvalidError("fg verification status")
	}
	return nil
}

// FinishedGoodsVerification tracks the quality gate between a batch finishing
// its terminal process and dispatch. One is created pending whenever the last
// process in the pipeline completes a batch.
type FinishedGoodsVerification struct {
	id      kernel.UUID
	batchID kernel.UUID
	status  FGStatus

	checkedBy *kernel.UUID
	checkedAt *time.Time
	notes     string

	dispatchedBy *kernel.UUID
	dispatchedAt *time.Time

	guard guard.ConstructorGuard
}

// NewFinishedGoodsVerification creates a pending verification for a batch.
func NewFinishedGoodsVerification(id, batchID kernel.UUID) (*FinishedGoodsVerification, error) {
	if err := errors.Join(id.Validate(), batchID.Validate()); err != nil {
		return nil, err
	}
	return &FinishedGoodsVerification{
		id:      id,
		batchID: batchID,
		status:  FGPendingVerification,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreFinishedGoodsVerification reconstructs the entity from persistence.
func RestoreFinishedGoodsVerification(
	id, batchID kernel.UUID,
	status FGStatus,
	checkedBy *kernel.UUID, checkedAt *time.Time, notes string,
	dispatchedBy *kernel.UUID, dispatchedAt *time.Time,
) (*FinishedGoodsVerification, error) {
	if err := errors.Join(id.Validate(), batchID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	return &FinishedGoodsVerification{
		id:           id,
		batchID:      batchID,
		status:       status,
		checkedBy:    checkedBy,
		checkedAt:    checkedAt,
		notes:        notes,
		dispatchedBy: dispatchedBy,
		dispatchedAt: dispatchedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entity was created through one of its constructors.
func (v *FinishedGoodsVerification) Validate() error {
	if v == nil {
		return ErrFGVerificationIsNotConstructed
	}
	return v.guard.Validate(ErrFGVerificationIsNotConstructed)
}

// ID returns the verification's unique identifier.
func (v *FinishedGoodsVerification) ID() kernel.UUID { return v.id }

// BatchID returns the verified batch's ID.
func (v *FinishedGoodsVerification) BatchID() kernel.UUID { return v.batchID }

// Status returns the current verification status.
func (v *FinishedGoodsVerification) Status() FGStatus { return v.status }

// CheckedBy returns who performed the quality check, nil until checked.
func (v *FinishedGoodsVerification) CheckedBy() *kernel.UUID { return v.checkedBy }

// CheckedAt returns when the quality check happened, nil until checked.
func (v *FinishedGoodsVerification) CheckedAt() *time.Time { return v.checkedAt }

// Notes returns the quality check notes.
func (v *FinishedGoodsVerification) Notes() string { return v.notes }

// DispatchedBy returns who dispatched the goods, nil until dispatched.
func (v *FinishedGoodsVerification) DispatchedBy() *kernel.UUID { return v.dispatchedBy }

// DispatchedAt returns when dispatch happened, nil until dispatched.
func (v *FinishedGoodsVerification) DispatchedAt() *time.Time { return v.dispatchedAt }

// RecordQualityCheck records the quality check outcome. Legal only while
// pending verification.
func (v *FinishedGoodsVerification) RecordQualityCheck(
	checker kernel.UUID, passed bool, notes string, at time.Time,
) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if err := checker.Validate(); err != nil {
		return err
	}
	if v.status != FGPendingVerification {
		return errs.NewInvalidStateTransitionError(
			"record quality check", v.status.String(), FGPendingVerification.String())
	}

	if passed {
		v.status = FGQualityCheckPassed
	} else {
		v.status = FGQualityCheckFailed
	}
	v.checkedBy = &checker
	v.checkedAt = &at
	v.notes = notes
	return nil
}

// ApproveForDispatch moves a passed verification to approved. Legal only from
// FGQualityCheckPassed.
func (v *FinishedGoodsVerification) ApproveForDispatch() error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.status != FGQualityCheckPassed {
		return errs.NewInvalidStateTransitionError(
			"approve for dispatch", v.status.String(), FGQualityCheckPassed.String())
	}
	v.status = FGApprovedForDispatch
	return nil
}

// Dispatch records dispatch of the finished goods. Legal only from
// FGApprovedForDispatch.
func (v *FinishedGoodsVerification) Dispatch(by kernel.UUID, at time.Time) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}
	if v.status != FGApprovedForDispatch {
		return errs.NewInvalidStateTransitionError(
			"dispatch", v.status.String(), FGApprovedForDispatch.String())
	}
	v.status = FGDispatched
	v.dispatchedBy = &by
	v.dispatchedAt = &at
	return nil
}
