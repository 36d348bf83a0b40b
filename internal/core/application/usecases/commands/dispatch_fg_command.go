package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrDispatchFGCommandIsNotConstructed = errors.New(
	"DispatchFGCommand must be created via NewDispatchFGCommand constructor",
)

// DispatchFGCommand releases a quality-passed batch from the finished-goods
// store.
type DispatchFGCommand struct { //nolint:recvcheck //using for validation
	verificationID kernel.UUID
	dispatchedBy   kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchFGCommand creates the dispatch command.
func NewDispatchFGCommand(verificationID, dispatchedBy kernel.UUID) (DispatchFGCommand, error) {
	cmd := DispatchFGCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVerificationID(verificationID),
		cmd.setDispatchedBy(dispatchedBy),
	); err != nil {
		return DispatchFGCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchFGCommand) Validate() error {
	return c.guard.Validate(ErrDispatchFGCommandIsNotConstructed)
}

func (c DispatchFGCommand) VerificationID() kernel.UUID {
	return c.verificationID
}

func (c DispatchFGCommand) DispatchedBy() kernel.UUID {
	return c.dispatchedBy
}

func (c *DispatchFGCommand) setVerificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.verificationID = id
	return nil
}

func (c *DispatchFGCommand) setDispatchedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.dispatchedBy = id
	return nil
}
