package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrAllocateRMCommandIsNotConstructed = errors.New(
	"AllocateRMCommand must be created via NewAllocateRMCommand constructor",
)

// AllocateRMCommand represents the RM store allocating raw material against
// an approved MO.
type AllocateRMCommand struct { //nolint:recvcheck //using for validation
	moID        kernel.UUID
	allocatorID kernel.UUID
	notes       string

	guard guard.ConstructorGuard
}

// NewAllocateRMCommand creates the allocation command. Notes are optional.
func NewAllocateRMCommand(moID, allocatorID kernel.UUID, notes string) (AllocateRMCommand, error) {
	cmd := AllocateRMCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMOID(moID),
		cmd.setAllocatorID(allocatorID),
	); err != nil {
		return AllocateRMCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateRMCommand) Validate() error {
	return c.guard.Validate(ErrAllocateRMCommandIsNotConstructed)
}

func (c AllocateRMCommand) MOID() kernel.UUID {
	return c.moID
}

func (c AllocateRMCommand) AllocatorID() kernel.UUID {
	return c.allocatorID
}

func (c AllocateRMCommand) Notes() string {
	return c.notes
}

func (c *AllocateRMCommand) setMOID(moID kernel.UUID) error {
	if err := moID.Validate(); err != nil {
		return err
	}
	c.moID = moID
	return nil
}

func (c *AllocateRMCommand) setAllocatorID(allocatorID kernel.UUID) error {
	if err := allocatorID.Validate(); err != nil {
		return err
	}
	c.allocatorID = allocatorID
	return nil
}
