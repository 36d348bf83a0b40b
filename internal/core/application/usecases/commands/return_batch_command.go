package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrReturnBatchCommandIsNotConstructed = errors.New(
	"ReturnBatchCommand must be created via NewReturnBatchCommand constructor",
)

// ReturnBatchCommand sends an unreceived allocation back to the sender, for
// example when the wrong batch arrives at a step.
type ReturnBatchCommand struct { //nolint:recvcheck //using for validation
	allocationID kernel.UUID
	returnedBy   kernel.UUID
	remarks      string

	guard guard.ConstructorGuard
}

// NewReturnBatchCommand creates the batch-return command.
func NewReturnBatchCommand(
	allocationID, returnedBy kernel.UUID, remarks string,
) (ReturnBatchCommand, error) {
	cmd := ReturnBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAllocationID(allocationID),
		cmd.setReturnedBy(returnedBy),
		cmd.setRemarks(remarks),
	); err != nil {
		return ReturnBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnBatchCommand) Validate() error {
	return c.guard.Validate(ErrReturnBatchCommandIsNotConstructed)
}

func (c ReturnBatchCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

func (c ReturnBatchCommand) ReturnedBy() kernel.UUID {
	return c.returnedBy
}

func (c ReturnBatchCommand) Remarks() string {
	return c.remarks
}

func (c *ReturnBatchCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.allocationID = id
	return nil
}

func (c *ReturnBatchCommand) setReturnedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.returnedBy = id
	return nil
}

func (c *ReturnBatchCommand) setRemarks(remarks string) error {
	if remarks == "" {
		return errs.NewValueIsRequiredError("remarks")
	}
	c.remarks = remarks
	return nil
}
