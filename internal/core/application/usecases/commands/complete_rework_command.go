package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrCompleteReworkCommandIsNotConstructed = errors.New(
	"CompleteReworkCommand must be created via NewCompleteReworkCommand constructor",
)

// CompleteReworkCommand closes a rework job with the OK/scrap split of the
// reworked quantity.
type CompleteReworkCommand struct { //nolint:recvcheck //using for validation
	reworkBatchID kernel.UUID
	completionID  kernel.UUID
	completedBy   kernel.UUID
	okQuantity    kernel.Quantity
	scrapQuantity kernel.Quantity
	remarks       string

	guard guard.ConstructorGuard
}

// NewCompleteReworkCommand creates the rework completion command.
func NewCompleteReworkCommand(
	reworkBatchID, completionID, completedBy kernel.UUID,
	okQuantity, scrapQuantity kernel.Quantity,
	remarks string,
) (CompleteReworkCommand, error) {
	cmd := CompleteReworkCommand{
		okQuantity:    okQuantity,
		scrapQuantity: scrapQuantity,
		remarks:       remarks,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReworkBatchID(reworkBatchID),
		cmd.setCompletionID(completionID),
		cmd.setCompletedBy(completedBy),
	); err != nil {
		return CompleteReworkCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteReworkCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReworkCommandIsNotConstructed)
}

func (c CompleteReworkCommand) ReworkBatchID() kernel.UUID {
	return c.reworkBatchID
}

func (c CompleteReworkCommand) CompletionID() kernel.UUID {
	return c.completionID
}

func (c CompleteReworkCommand) CompletedBy() kernel.UUID {
	return c.completedBy
}

func (c CompleteReworkCommand) OKQuantity() kernel.Quantity {
	return c.okQuantity
}

func (c CompleteReworkCommand) ScrapQuantity() kernel.Quantity {
	return c.scrapQuantity
}

func (c CompleteReworkCommand) Remarks() string {
	return c.remarks
}

func (c *CompleteReworkCommand) setReworkBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.reworkBatchID = id
	return nil
}

func (c *CompleteReworkCommand) setCompletionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.completionID = id
	return nil
}

func (c *CompleteReworkCommand) setCompletedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.completedBy = id
	return nil
}
