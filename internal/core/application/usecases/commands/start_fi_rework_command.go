package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrStartFIReworkCommandIsNotConstructed = errors.New(
	"StartFIReworkCommand must be created via NewStartFIReworkCommand constructor",
)

// StartFIReworkCommand moves a pending final-inspection rework cycle to in
// progress.
type StartFIReworkCommand struct { //nolint:recvcheck //using for validation
	fiReworkID kernel.UUID
	startedBy  kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartFIReworkCommand creates the start command.
func NewStartFIReworkCommand(fiReworkID, startedBy kernel.UUID) (StartFIReworkCommand, error) {
	cmd := StartFIReworkCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setFIReworkID(fiReworkID),
		cmd.setStartedBy(startedBy),
	); err != nil {
		return StartFIReworkCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartFIReworkCommand) Validate() error {
	return c.guard.Validate(ErrStartFIReworkCommandIsNotConstructed)
}

func (c StartFIReworkCommand) FIReworkID() kernel.UUID {
	return c.fiReworkID
}

func (c StartFIReworkCommand) StartedBy() kernel.UUID {
	return c.startedBy
}

func (c *StartFIReworkCommand) setFIReworkID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.fiReworkID = id
	return nil
}

func (c *StartFIReworkCommand) setStartedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.startedBy = id
	return nil
}
