package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrRecordCompletionCommandIsNotConstructed = errors.New(
	"RecordCompletionCommand must be created via NewRecordCompletionCommand constructor",
)

// RecordCompletionCommand splits a processed quantity into OK, scrap and
// rework parts. A defect description is required when any quantity goes to
// rework.
type RecordCompletionCommand struct { //nolint:recvcheck //using for validation
	completionID      kernel.UUID
	reworkBatchID     kernel.UUID
	batchID           kernel.UUID
	executionID       kernel.UUID
	completedBy       kernel.UUID
	supervisorID      kernel.UUID
	inputQuantity     kernel.Quantity
	okQuantity        kernel.Quantity
	scrapQuantity     kernel.Quantity
	reworkQuantity    kernel.Quantity
	defectDescription string
	remarks           string

	guard guard.ConstructorGuard
}

// NewRecordCompletionCommand creates the completion command. The rework batch
// id is consumed only when the rework quantity is positive.
func NewRecordCompletionCommand(
	completionID, reworkBatchID, batchID, executionID, completedBy, supervisorID kernel.UUID,
	inputQuantity, okQuantity, scrapQuantity, reworkQuantity kernel.Quantity,
	defectDescription, remarks string,
) (RecordCompletionCommand, error) {
	cmd := RecordCompletionCommand{
		inputQuantity:  inputQuantity,
		okQuantity:     okQuantity,
		scrapQuantity:  scrapQuantity,
		reworkQuantity: reworkQuantity,
		remarks:        remarks,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCompletionID(completionID),
		cmd.setReworkBatchID(reworkBatchID),
		cmd.setBatchID(batchID),
		cmd.setExecutionID(executionID),
		cmd.setCompletedBy(completedBy),
		cmd.setSupervisorID(supervisorID),
		cmd.setDefectDescription(defectDescription, reworkQuantity),
	); err != nil {
		return RecordCompletionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordCompletionCommand) Validate() error {
	return c.guard.Validate(ErrRecordCompletionCommandIsNotConstructed)
}

func (c RecordCompletionCommand) CompletionID() kernel.UUID {
	return c.completionID
}

func (c RecordCompletionCommand) ReworkBatchID() kernel.UUID {
	return c.reworkBatchID
}

func (c RecordCompletionCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c RecordCompletionCommand) ExecutionID() kernel.UUID {
	return c.executionID
}

func (c RecordCompletionCommand) CompletedBy() kernel.UUID {
	return c.completedBy
}

func (c RecordCompletionCommand) SupervisorID() kernel.UUID {
	return c.supervisorID
}

func (c RecordCompletionCommand) InputQuantity() kernel.Quantity {
	return c.inputQuantity
}

func (c RecordCompletionCommand) OKQuantity() kernel.Quantity {
	return c.okQuantity
}

func (c RecordCompletionCommand) ScrapQuantity() kernel.Quantity {
	return c.scrapQuantity
}

func (c RecordCompletionCommand) ReworkQuantity() kernel.Quantity {
	return c.reworkQuantity
}

func (c RecordCompletionCommand) DefectDescription() string {
	return c.defectDescription
}

func (c RecordCompletionCommand) Remarks() string {
	return c.remarks
}

func (c *RecordCompletionCommand) setCompletionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.completionID = id
	return nil
}

func (c *RecordCompletionCommand) setReworkBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.reworkBatchID = id
	return nil
}

func (c *RecordCompletionCommand) setBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.batchID = id
	return nil
}

func (c *RecordCompletionCommand) setExecutionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.executionID = id
	return nil
}

func (c *RecordCompletionCommand) setCompletedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.completedBy = id
	return nil
}

func (c *RecordCompletionCommand) setSupervisorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.supervisorID = id
	return nil
}

func (c *RecordCompletionCommand) setDefectDescription(
	defectDescription string,
	reworkQuantity kernel.Quantity,
) error {
	if reworkQuantity.IsPositive() && defectDescription == "" {
		return errs.NewValueIsRequiredError("defectDescription")
	}
	c.defectDescription = defectDescription
	return nil
}
