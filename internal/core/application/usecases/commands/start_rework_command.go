package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrStartReworkCommandIsNotConstructed = errors.New(
	"StartReworkCommand must be created via NewStartReworkCommand constructor",
)

// StartReworkCommand moves a pending rework job to in progress.
type StartReworkCommand struct { //nolint:recvcheck //using for validation
	reworkBatchID kernel.UUID
	startedBy     kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartReworkCommand creates the start command.
func NewStartReworkCommand(reworkBatchID, startedBy kernel.UUID) (StartReworkCommand, error) {
	cmd := StartReworkCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReworkBatchID(reworkBatchID),
		cmd.setStartedBy(startedBy),
	); err != nil {
		return StartReworkCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartReworkCommand) Validate() error {
	return c.guard.Validate(ErrStartReworkCommandIsNotConstructed)
}

func (c StartReworkCommand) ReworkBatchID() kernel.UUID {
	return c.reworkBatchID
}

func (c StartReworkCommand) StartedBy() kernel.UUID {
	return c.startedBy
}

func (c *StartReworkCommand) setReworkBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.reworkBatchID = id
	return nil
}

func (c *StartReworkCommand) setStartedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.startedBy = id
	return nil
}
