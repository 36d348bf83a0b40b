package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrApproveMOCommandIsNotConstructed = errors.New(
	"ApproveMOCommand must be created via NewApproveMOCommand constructor",
)

// ApproveMOCommand represents a manager's approval of a pending MO.
type ApproveMOCommand struct { //nolint:recvcheck //using for validation
	moID       kernel.UUID
	approverID kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

// NewApproveMOCommand creates the approval command. Notes are optional.
func NewApproveMOCommand(moID, approverID kernel.UUID, notes string) (ApproveMOCommand, error) {
	cmd := ApproveMOCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMOID(moID),
		cmd.setApproverID(approverID),
	); err != nil {
		return ApproveMOCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveMOCommand) Validate() error {
	return c.guard.Validate(ErrApproveMOCommandIsNotConstructed)
}

func (c ApproveMOCommand) MOID() kernel.UUID {
	return c.moID
}

func (c ApproveMOCommand) ApproverID() kernel.UUID {
	return c.approverID
}

func (c ApproveMOCommand) Notes() string {
	return c.notes
}

func (c *ApproveMOCommand) setMOID(moID kernel.UUID) error {
	if err := moID.Validate(); err != nil {
		return err
	}
	c.moID = moID
	return nil
}

func (c *ApproveMOCommand) setApproverID(approverID kernel.UUID) error {
	if err := approverID.Validate(); err != nil {
		return err
	}
	c.approverID = approverID
	return nil
}
