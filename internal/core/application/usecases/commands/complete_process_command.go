package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrCompleteProcessCommandIsNotConstructed = errors.New(
	"CompleteProcessCommand must be created via NewCompleteProcessCommand constructor",
)

// CompleteProcessCommand closes a batch's pass through one pipeline step.
type CompleteProcessCommand struct { //nolint:recvcheck //using for validation
	allocationID kernel.UUID
	completedBy  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteProcessCommand creates the completion command.
func NewCompleteProcessCommand(allocationID, completedBy kernel.UUID) (CompleteProcessCommand, error) {
	cmd := CompleteProcessCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAllocationID(allocationID),
		cmd.setCompletedBy(completedBy),
	); err != nil {
		return CompleteProcessCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteProcessCommand) Validate() error {
	return c.guard.Validate(ErrCompleteProcessCommandIsNotConstructed)
}

func (c CompleteProcessCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

func (c CompleteProcessCommand) CompletedBy() kernel.UUID {
	return c.completedBy
}

func (c *CompleteProcessCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.allocationID = id
	return nil
}

func (c *CompleteProcessCommand) setCompletedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.completedBy = id
	return nil
}
