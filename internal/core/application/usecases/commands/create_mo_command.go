package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/order"
	"mestrace/internal/pkg/guard"
)

var ErrCreateMOCommandIsNotConstructed = errors.New(
	"CreateMOCommand must be created via NewCreateMOCommand constructor",
)

// CreateMOCommand represents a request to register a new manufacturing order.
// The order enters the approval workflow in the pending-manager-approval
// state; nothing can be produced against it until the workflow releases it.
//
// Example:
//
//	moID := kernel.NewUUID()
//	qty, _ := kernel.NewQuantity(3000)
//	cmd, err := NewCreateMOCommand(moID, "MO-2025-0042", "SPR-0815", qty,
//	    order.ShiftI, order.PriorityHigh, plannerID)
//	if err != nil {
//	    return fmt.Errorf("invalid MO data: %w", err)
//	}
type CreateMOCommand struct { //nolint:recvcheck //using for validation
	moID           kernel.UUID
	moNumber       string
	productCode    string
	targetQuantity kernel.Quantity
	shift          order.Shift
	priority       order.Priority
	createdBy      kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateMOCommand creates a command to register a new manufacturing order.
// Field validation mirrors the aggregate's rules so a bad request fails
// before a transaction is opened.
func NewCreateMOCommand(
	moID kernel.UUID,
	moNumber string,
	productCode string,
	targetQuantity kernel.Quantity,
	shift order.Shift,
	priority order.Priority,
	createdBy kernel.UUID,
) (CreateMOCommand, error) {
	cmd := CreateMOCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMOID(moID),
		cmd.setMONumber(moNumber),
		cmd.setProductCode(productCode),
		cmd.setTargetQuantity(targetQuantity),
		cmd.setShift(shift),
		cmd.setPriority(priority),
		cmd.setCreatedBy(createdBy),
	); err != nil {
		return CreateMOCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateMOCommand) Validate() error {
	return c.guard.Validate(ErrCreateMOCommandIsNotConstructed)
}

func (c CreateMOCommand) MOID() kernel.UUID {
	return c.moID
}

func (c CreateMOCommand) MONumber() string {
	return c.moNumber
}

func (c CreateMOCommand) ProductCode() string {
	return c.productCode
}

func (c CreateMOCommand) TargetQuantity() kernel.Quantity {
	return c.targetQuantity
}

func (c CreateMOCommand) Shift() order.Shift {
	return c.shift
}

func (c CreateMOCommand) Priority() order.Priority {
	return c.priority
}

func (c CreateMOCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *CreateMOCommand) setMOID(moID kernel.UUID) error {
	if err := moID.Validate(); err != nil {
		return err
	}
	c.moID = moID
	return nil
}

func (c *CreateMOCommand) setMONumber(moNumber string) error {
	if moNumber == "" {
		return errors.New("mo number is required")
	}
	c.moNumber = moNumber
	return nil
}

func (c *CreateMOCommand) setProductCode(productCode string) error {
	if productCode == "" {
		return errors.New("product code is required")
	}
	c.productCode = productCode
	return nil
}

func (c *CreateMOCommand) setTargetQuantity(q kernel.Quantity) error {
	if !q.IsPositive() {
		return errors.New("target quantity must be greater than 0")
	}
	c.targetQuantity = q
	return nil
}

func (c *CreateMOCommand) setShift(s order.Shift) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.shift = s
	return nil
}

func (c *CreateMOCommand) setPriority(p order.Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.priority = p
	return nil
}

func (c *CreateMOCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	c.createdBy = createdBy
	return nil
}
