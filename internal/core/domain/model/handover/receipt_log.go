package handover

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrReceiptLogIsNotConstructed is returned when a BatchReceiptLog instance
// was not created through the NewBatchReceiptLog factory method.
var ErrReceiptLogIsNotConstructed = errors.New(
	"BatchReceiptLog must be created via NewBatchReceiptLog constructor")

// BatchReceiptLog brackets the physical move of a batch between two pipeline
// steps: opened when the sending side hands the batch over, confirmed when
// the receiving side verifies or reports it. Transit duration is derived from
// the two timestamps, never stored.
type BatchReceiptLog struct {
	id           kernel.UUID
	batchID      kernel.UUID
	allocationID kernel.UUID

	// fromExecutionID is nil for the first handover out of the RM store.
	fromExecutionID *kernel.UUID
	toExecutionID   kernel.UUID

	handedOverBy     kernel.UUID
	handedOverAt     time.Time
	handoverQuantity kernel.Quantity

	receivedAt       *time.Time
	receivedQuantity *kernel.Quantity
	verificationID   *kernel.UUID
	isVerified       bool
	hasIssues        bool

	guard guard.ConstructorGuard
}

// NewBatchReceiptLog opens a transit record at handover time.
func NewBatchReceiptLog(
	id kernel.UUID,
	batchID kernel.UUID,
	allocationID kernel.UUID,
	fromExecutionID *kernel.UUID,
	toExecutionID kernel.UUID,
	handedOverBy kernel.UUID,
	handoverQuantity kernel.Quantity,
	handedOverAt time.Time,
) (*BatchReceiptLog, error) {
	l := &BatchReceiptLog{
		fromExecutionID: fromExecutionID,
		handedOverAt:    handedOverAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setBatchID(batchID),
		l.setAllocationID(allocationID),
		l.setToExecutionID(toExecutionID),
		l.setHandedOverBy(handedOverBy),
		l.setHandoverQuantity(handoverQuantity),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreBatchReceiptLog reconstructs a transit record from persistence.
func RestoreBatchReceiptLog(
	id kernel.UUID,
	batchID kernel.UUID,
	allocationID kernel.UUID,
	fromExecutionID *kernel.UUID,
	toExecutionID kernel.UUID,
	handedOverBy kernel.UUID,
	handoverQuantity kernel.Quantity,
	handedOverAt time.Time,
	receivedAt *time.Time,
	receivedQuantity *kernel.Quantity,
	verificationID *kernel.UUID,
	isVerified bool,
	hasIssues bool,
) (*BatchReceiptLog, error) {
	l := &BatchReceiptLog{
		fromExecutionID:  fromExecutionID,
		handedOverAt:     handedOverAt,
		receivedAt:       receivedAt,
		receivedQuantity: receivedQuantity,
		verificationID:   verificationID,
		isVerified:       isVerified,
		hasIssues:        hasIssues,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setBatchID(batchID),
		l.setAllocationID(allocationID),
		l.setToExecutionID(toExecutionID),
		l.setHandedOverBy(handedOverBy),
		l.setHandoverQuantity(handoverQuantity),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate ensures the log was created through one of its constructors.
func (l *BatchReceiptLog) Validate() error {
	if l == nil {
		return ErrReceiptLogIsNotConstructed
	}
	return l.guard.Validate(ErrReceiptLogIsNotConstructed)
}

func (l *BatchReceiptLog) ID() kernel.UUID {
	return l.id
}

func (l *BatchReceiptLog) BatchID() kernel.UUID {
	return l.batchID
}

func (l *BatchReceiptLog) AllocationID() kernel.UUID {
	return l.allocationID
}

// FromExecutionID returns the sending step, nil when the batch came straight
// from the RM store.
func (l *BatchReceiptLog) FromExecutionID() *kernel.UUID {
	return l.fromExecutionID
}

func (l *BatchReceiptLog) ToExecutionID() kernel.UUID {
	return l.toExecutionID
}

func (l *BatchReceiptLog) HandedOverBy() kernel.UUID {
	return l.handedOverBy
}

func (l *BatchReceiptLog) HandedOverAt() time.Time {
	return l.handedOverAt
}

func (l *BatchReceiptLog) HandoverQuantity() kernel.Quantity {
	return l.handoverQuantity
}

func (l *BatchReceiptLog) ReceivedAt() *time.Time {
	return l.receivedAt
}

func (l *BatchReceiptLog) ReceivedQuantity() *kernel.Quantity {
	return l.receivedQuantity
}

// VerificationID returns the confirming verification, nil while in transit.
func (l *BatchReceiptLog) VerificationID() *kernel.UUID {
	return l.verificationID
}

// IsVerified reports whether the receiving side confirmed the transit.
func (l *BatchReceiptLog) IsVerified() bool {
	return l.isVerified
}

// HasIssues reports whether the confirming verification was a report.
func (l *BatchReceiptLog) HasIssues() bool {
	return l.hasIssues
}

// TransitDurationMinutes returns whole minutes between handover and receipt,
// nil while the transit is still open.
func (l *BatchReceiptLog) TransitDurationMinutes() *int {
	if l.receivedAt == nil {
		return nil
	}
	minutes := int(l.receivedAt.Sub(l.handedOverAt).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return &minutes
}

// ConfirmReceipt closes the transit with the receiving side's verification.
// A log can be confirmed exactly once.
func (l *BatchReceiptLog) ConfirmReceipt(
	verification *BatchReceiptVerification,
	receivedQuantity kernel.Quantity,
	at time.Time,
) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := verification.Validate(); err != nil {
		return err
	}
	if l.isVerified {
		return errs.NewInvalidStateTransitionError("confirm receipt", "verified", "in transit")
	}
	if at.Before(l.handedOverAt) {
		return errs.NewValueIsInvalidError("receivedAt")
	}
	if !receivedQuantity.IsPositive() {
		return errs.NewValueIsInvalidError("receivedQuantity")
	}

	verificationID := verification.ID()
	l.verificationID = &verificationID
	l.receivedAt = &at
	l.receivedQuantity = &receivedQuantity
	l.isVerified = true
	l.hasIssues = verification.Action() == ActionReported
	return nil
}

func (l *BatchReceiptLog) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	l.id = id
	return nil
}

func (l *BatchReceiptLog) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("batchID", err)
	}
	l.batchID = batchID
	return nil
}

func (l *BatchReceiptLog) setAllocationID(allocationID kernel.UUID) error {
	if err := allocationID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("allocationID", err)
	}
	l.allocationID = allocationID
	return nil
}

func (l *BatchReceiptLog) setToExecutionID(toExecutionID kernel.UUID) error {
	if err := toExecutionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("toExecutionID", err)
	}
	l.toExecutionID = toExecutionID
	return nil
}

func (l *BatchReceiptLog) setHandedOverBy(handedOverBy kernel.UUID) error {
	if err := handedOverBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("handedOverBy", err)
	}
	l.handedOverBy = handedOverBy
	return nil
}

func (l *BatchReceiptLog) setHandoverQuantity(handoverQuantity kernel.Quantity) error {
	if !handoverQuantity.IsPositive() {
		return errs.NewValueIsInvalidError("handoverQuantity")
	}
	l.handoverQuantity = handoverQuantity
	return nil
}
