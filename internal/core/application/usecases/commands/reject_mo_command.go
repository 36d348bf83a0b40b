package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var (
	ErrRejectMOCommandIsNotConstructed = errors.New(
		"RejectMOCommand must be created via NewRejectMOCommand constructor",
	)
	ErrRejectionNotesAreRequired = errors.New("rejection notes are required")
)

// RejectMOCommand represents a manager's terminal rejection of a pending MO.
// Unlike approval, a rejection must say why.
type RejectMOCommand struct { //nolint:recvcheck //using for validation
	moID       kernel.UUID
	rejectorID kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

// NewRejectMOCommand creates the rejection command.
func NewRejectMOCommand(moID, rejectorID kernel.UUID, notes string) (RejectMOCommand, error) {
	cmd := RejectMOCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMOID(moID),
		cmd.setRejectorID(rejectorID),
		cmd.setNotes(notes),
	); err != nil {
		return RejectMOCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectMOCommand) Validate() error {
	return c.guard.Validate(ErrRejectMOCommandIsNotConstructed)
}

func (c RejectMOCommand) MOID() kernel.UUID {
	return c.moID
}

func (c RejectMOCommand) RejectorID() kernel.UUID {
	return c.rejectorID
}

func (c RejectMOCommand) Notes() string {
	return c.notes
}

func (c *RejectMOCommand) setMOID(moID kernel.UUID) error {
	if err := moID.Validate(); err != nil {
		return err
	}
	c.moID = moID
	return nil
}

func (c *RejectMOCommand) setRejectorID(rejectorID kernel.UUID) error {
	if err := rejectorID.Validate(); err != nil {
		return err
	}
	c.rejectorID = rejectorID
	return nil
}

func (c *RejectMOCommand) setNotes(notes string) error {
	if notes == "" {
		return ErrRejectionNotesAreRequired
	}
	c.notes = notes
	return nil
}
