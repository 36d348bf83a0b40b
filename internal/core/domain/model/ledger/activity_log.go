package ledger

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when a ProcessActivityLog instance was
// not created through the NewProcessActivityLog factory method.
var ErrEntryIsNotConstructed = errors.New(
	"ProcessActivityLog must be created via NewProcessActivityLog constructor")

// ActivityDetails carries the optional attachments of a ledger entry. Which
// fields are set depends on the activity type; the entry itself only requires
// an actor and a timestamp.
type ActivityDetails struct {
	MOID        *kernel.UUID
	BatchID     *kernel.UUID
	ExecutionID *kernel.UUID

	OKQuantity     *kernel.Quantity
	ScrapQuantity  *kernel.Quantity
	ReworkQuantity *kernel.Quantity

	Reason  string
	Remarks string
}

// ProcessActivityLog is one immutable entry of the traceability ledger.
// Entries are append-only: there are no mutators, and repositories must never
// update or delete them.
type ProcessActivityLog struct {
	id           kernel.UUID
	activityType ActivityType
	actor        kernel.UUID
	occurredAt   time.Time
	details      ActivityDetails

	guard guard.ConstructorGuard
}

// NewProcessActivityLog creates a ledger entry.
func NewProcessActivityLog(
	id kernel.UUID,
	activityType ActivityType,
	actor kernel.UUID,
	occurredAt time.Time,
	details ActivityDetails,
) (*ProcessActivityLog, error) {
	e := &ProcessActivityLog{
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setActivityType(activityType),
		e.setActor(actor),
		e.setDetails(details),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreProcessActivityLog reconstructs an entry from persistence.
func RestoreProcessActivityLog(
	id kernel.UUID,
	activityType ActivityType,
	actor kernel.UUID,
	occurredAt time.Time,
	details ActivityDetails,
) (*ProcessActivityLog, error) {
	return NewProcessActivityLog(id, activityType, actor, occurredAt, details)
}

// Validate ensures the entry was created through one of its constructors.
func (e *ProcessActivityLog) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *ProcessActivityLog) ID() kernel.UUID {
	return e.id
}

func (e *ProcessActivityLog) ActivityType() ActivityType {
	return e.activityType
}

func (e *ProcessActivityLog) Actor() kernel.UUID {
	return e.actor
}

func (e *ProcessActivityLog) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *ProcessActivityLog) Details() ActivityDetails {
	return e.details
}

func (e *ProcessActivityLog) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	e.id = id
	return nil
}

func (e *ProcessActivityLog) setActivityType(activityType ActivityType) error {
	if err := activityType.Validate(); err != nil {
		return err
	}
	e.activityType = activityType
	return nil
}

func (e *ProcessActivityLog) setActor(actor kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("actor", err)
	}
	e.actor = actor
	return nil
}

func (e *ProcessActivityLog) setDetails(details ActivityDetails) error {
	check := func(name string, id *kernel.UUID) error {
		if id == nil {
			return nil
		}
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(name, err)
		}
		return nil
	}
	if err := errors.Join(
		check("moID", details.MOID),
		check("batchID", details.BatchID),
		check("executionID", details.ExecutionID),
	); err != nil {
		return err
	}
	e.details = details
	return nil
}
