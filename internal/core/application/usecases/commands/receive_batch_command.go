package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrReceiveBatchCommandIsNotConstructed = errors.New(
	"ReceiveBatchCommand must be created via NewReceiveBatchCommand constructor",
)

// ReceiveBatchCommand acknowledges physical receipt of an allocated batch at
// its destination step.
type ReceiveBatchCommand struct { //nolint:recvcheck //using for validation
	allocationID kernel.UUID
	receivedBy   kernel.UUID

	guard guard.ConstructorGuard
}

// NewReceiveBatchCommand creates the receipt command.
func NewReceiveBatchCommand(allocationID, receivedBy kernel.UUID) (ReceiveBatchCommand, error) {
	cmd := ReceiveBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAllocationID(allocationID),
		cmd.setReceivedBy(receivedBy),
	); err != nil {
		return ReceiveBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveBatchCommand) Validate() error {
	return c.guard.Validate(ErrReceiveBatchCommandIsNotConstructed)
}

func (c ReceiveBatchCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

func (c ReceiveBatchCommand) ReceivedBy() kernel.UUID {
	return c.receivedBy
}

func (c *ReceiveBatchCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.allocationID = id
	return nil
}

func (c *ReceiveBatchCommand) setReceivedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.receivedBy = id
	return nil
}
