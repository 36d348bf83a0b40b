package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrCreateFIReworkCommandIsNotConstructed = errors.New(
	"CreateFIReworkCommand must be created via NewCreateFIReworkCommand constructor",
)

// CreateFIReworkCommand opens a final-inspection rework cycle against the
// pipeline step that caused the defect.
type CreateFIReworkCommand struct { //nolint:recvcheck //using for validation
	fiReworkID           kernel.UUID
	batchID              kernel.UUID
	defectiveExecutionID kernel.UUID
	quantity             kernel.Quantity
	defectDescription    string
	createdBy            kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateFIReworkCommand creates the final-inspection rework command.
func NewCreateFIReworkCommand(
	fiReworkID, batchID, defectiveExecutionID kernel.UUID,
	quantity kernel.Quantity,
	defectDescription string,
	createdBy kernel.UUID,
) (CreateFIReworkCommand, error) {
	cmd := CreateFIReworkCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setFIReworkID(fiReworkID),
		cmd.setBatchID(batchID),
		cmd.setDefectiveExecutionID(defectiveExecutionID),
		cmd.setQuantity(quantity),
		cmd.setDefectDescription(defectDescription),
		cmd.setCreatedBy(createdBy),
	); err != nil {
		return CreateFIReworkCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateFIReworkCommand) Validate() error {
	return c.guard.Validate(ErrCreateFIReworkCommandIsNotConstructed)
}

func (c CreateFIReworkCommand) FIReworkID() kernel.UUID {
	return c.fiReworkID
}

func (c CreateFIReworkCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c CreateFIReworkCommand) DefectiveExecutionID() kernel.UUID {
	return c.defectiveExecutionID
}

func (c CreateFIReworkCommand) Quantity() kernel.Quantity {
	return c.quantity
}

func (c CreateFIReworkCommand) DefectDescription() string {
	return c.defectDescription
}

func (c CreateFIReworkCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *CreateFIReworkCommand) setFIReworkID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.fiReworkID = id
	return nil
}

func (c *CreateFIReworkCommand) setBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.batchID = id
	return nil
}

func (c *CreateFIReworkCommand) setDefectiveExecutionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.defectiveExecutionID = id
	return nil
}

func (c *CreateFIReworkCommand) setQuantity(q kernel.Quantity) error {
	if !q.IsPositive() {
		return errs.NewValueIsInvalidError("quantity")
	}
	c.quantity = q
	return nil
}

func (c *CreateFIReworkCommand) setDefectDescription(defectDescription string) error {
	if defectDescription == "" {
		return errs.NewValueIsRequiredError("defectDescription")
	}
	c.defectDescription = defectDescription
	return nil
}

func (c *CreateFIReworkCommand) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.createdBy = id
	return nil
}
