package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrStartProcessingCommandIsNotConstructed = errors.New(
	"StartProcessingCommand must be created via NewStartProcessingCommand constructor",
)

// StartProcessingCommand marks a received batch as being worked at its step.
type StartProcessingCommand struct { //nolint:recvcheck //using for validation
	allocationID kernel.UUID
	startedBy    kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartProcessingCommand creates the processing-start command.
func NewStartProcessingCommand(allocationID, startedBy kernel.UUID) (StartProcessingCommand, error) {
	cmd := StartProcessingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAllocationID(allocationID),
		cmd.setStartedBy(startedBy),
	); err != nil {
		return StartProcessingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartProcessingCommand) Validate() error {
	return c.guard.Validate(ErrStartProcessingCommandIsNotConstructed)
}

func (c StartProcessingCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

func (c StartProcessingCommand) StartedBy() kernel.UUID {
	return c.startedBy
}

func (c *StartProcessingCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.allocationID = id
	return nil
}

func (c *StartProcessingCommand) setStartedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.startedBy = id
	return nil
}
