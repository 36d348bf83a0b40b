package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrCreateBatchCommandIsNotConstructed = errors.New(
	"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
)

// CreateBatchCommand represents splitting a production batch off an MO whose
// workflow has released it to production. The batch number is not part of the
// command: the sequence is claimed atomically inside the handler's
// transaction.
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	batchID         kernel.UUID
	moID            kernel.UUID
	productCode     string
	plannedQuantity kernel.Quantity
	createdBy       kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateBatchCommand creates the batch creation command.
func NewCreateBatchCommand(
	batchID kernel.UUID,
	moID kernel.UUID,
	productCode string,
	plannedQuantity kernel.Quantity,
	createdBy kernel.UUID,
) (CreateBatchCommand, error) {
	cmd := CreateBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchID(batchID),
		cmd.setMOID(moID),
		cmd.setProductCode(productCode),
		cmd.setPlannedQuantity(plannedQuantity),
		cmd.setCreatedBy(createdBy),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

func (c CreateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c CreateBatchCommand) MOID() kernel.UUID {
	return c.moID
}

func (c CreateBatchCommand) ProductCode() string {
	return c.productCode
}

func (c CreateBatchCommand) PlannedQuantity() kernel.Quantity {
	return c.plannedQuantity
}

func (c CreateBatchCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *CreateBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	c.batchID = batchID
	return nil
}

func (c *CreateBatchCommand) setMOID(moID kernel.UUID) error {
	if err := moID.Validate(); err != nil {
		return err
	}
	c.moID = moID
	return nil
}

func (c *CreateBatchCommand) setProductCode(productCode string) error {
	if productCode == "" {
		return errors.New("product code is required")
	}
	c.productCode = productCode
	return nil
}

func (c *CreateBatchCommand) setPlannedQuantity(q kernel.Quantity) error {
	if !q.IsPositive() {
		return errors.New("planned quantity must be greater than 0")
	}
	c.plannedQuantity = q
	return nil
}

func (c *CreateBatchCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	c.createdBy = createdBy
	return nil
}
