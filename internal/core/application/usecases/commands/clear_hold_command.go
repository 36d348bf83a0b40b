package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrClearHoldCommandIsNotConstructed = errors.New(
	"ClearHoldCommand must be created via NewClearHoldCommand constructor",
)

// ClearHoldCommand lifts the hold of a reported receipt so the batch can keep
// moving while the discrepancy is investigated.
type ClearHoldCommand struct { //nolint:recvcheck //using for validation
	verificationID kernel.UUID
	clearedBy      kernel.UUID

	guard guard.ConstructorGuard
}

// NewClearHoldCommand creates the hold-clearing command.
func NewClearHoldCommand(verificationID, clearedBy kernel.UUID) (ClearHoldCommand, error) {
	cmd := ClearHoldCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVerificationID(verificationID),
		cmd.setClearedBy(clearedBy),
	); err != nil {
		return ClearHoldCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClearHoldCommand) Validate() error {
	return c.guard.Validate(ErrClearHoldCommandIsNotConstructed)
}

func (c ClearHoldCommand) VerificationID() kernel.UUID {
	return c.verificationID
}

func (c ClearHoldCommand) ClearedBy() kernel.UUID {
	return c.clearedBy
}

func (c *ClearHoldCommand) setVerificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.verificationID = id
	return nil
}

func (c *ClearHoldCommand) setClearedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.clearedBy = id
	return nil
}
