package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrAllocateBatchCommandIsNotConstructed = errors.New(
	"AllocateBatchCommand must be created via NewAllocateBatchCommand constructor",
)

// AllocateBatchCommand hands a batch over to a pipeline step. A nil source
// step means the batch leaves the raw-material store; otherwise it is a
// handover from the step that just finished with it.
type AllocateBatchCommand struct { //nolint:recvcheck //using for validation
	allocationID     kernel.UUID
	receiptLogID     kernel.UUID
	batchID          kernel.UUID
	executionID      kernel.UUID
	fromExecutionID  *kernel.UUID
	operatorID       kernel.UUID
	allocatedBy      kernel.UUID
	heatNumbers      []string
	handoverQuantity kernel.Quantity

	guard guard.ConstructorGuard
}

// NewAllocateBatchCommand creates the allocation command.
func NewAllocateBatchCommand(
	allocationID, receiptLogID, batchID, executionID kernel.UUID,
	fromExecutionID *kernel.UUID,
	operatorID, allocatedBy kernel.UUID,
	heatNumbers []string,
	handoverQuantity kernel.Quantity,
) (AllocateBatchCommand, error) {
	cmd := AllocateBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAllocationID(allocationID),
		cmd.setReceiptLogID(receiptLogID),
		cmd.setBatchID(batchID),
		cmd.setExecutionID(executionID),
		cmd.setFromExecutionID(fromExecutionID),
		cmd.setOperatorID(operatorID),
		cmd.setAllocatedBy(allocatedBy),
		cmd.setHeatNumbers(heatNumbers),
		cmd.setHandoverQuantity(handoverQuantity),
	); err != nil {
		return AllocateBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateBatchCommand) Validate() error {
	return c.guard.Validate(ErrAllocateBatchCommandIsNotConstructed)
}

func (c AllocateBatchCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

func (c AllocateBatchCommand) ReceiptLogID() kernel.UUID {
	return c.receiptLogID
}

func (c AllocateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c AllocateBatchCommand) ExecutionID() kernel.UUID {
	return c.executionID
}

// FromExecutionID returns the source step, or nil for a raw-material store
// handover.
func (c AllocateBatchCommand) FromExecutionID() *kernel.UUID {
	return c.fromExecutionID
}

func (c AllocateBatchCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c AllocateBatchCommand) AllocatedBy() kernel.UUID {
	return c.allocatedBy
}

func (c AllocateBatchCommand) HeatNumbers() []string {
	return append([]string(nil), c.heatNumbers...)
}

func (c AllocateBatchCommand) HandoverQuantity() kernel.Quantity {
	return c.handoverQuantity
}

func (c *AllocateBatchCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.allocationID = id
	return nil
}

func (c *AllocateBatchCommand) setReceiptLogID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.receiptLogID = id
	return nil
}

func (c *AllocateBatchCommand) setBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.batchID = id
	return nil
}

func (c *AllocateBatchCommand) setExecutionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.executionID = id
	return nil
}

func (c *AllocateBatchCommand) setFromExecutionID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("fromExecutionID", err)
	}
	v := *id
	c.fromExecutionID = &v
	return nil
}

func (c *AllocateBatchCommand) setOperatorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.operatorID = id
	return nil
}

func (c *AllocateBatchCommand) setAllocatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.allocatedBy = id
	return nil
}

func (c *AllocateBatchCommand) setHeatNumbers(heatNumbers []string) error {
	for _, hn := range heatNumbers {
		if hn == "" {
			return errs.NewValueIsRequiredError("heatNumbers")
		}
	}
	c.heatNumbers = append([]string(nil), heatNumbers...)
	return nil
}

func (c *AllocateBatchCommand) setHandoverQuantity(q kernel.Quantity) error {
	if !q.IsPositive() {
		return errs.NewValueIsInvalidError("handoverQuantity")
	}
	c.handoverQuantity = q
	return nil
}
