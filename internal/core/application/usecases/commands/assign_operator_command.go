package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrAssignOperatorCommandIsNotConstructed = errors.New(
	"AssignOperatorCommand must be created via NewAssignOperatorCommand constructor",
)

// AssignOperatorCommand represents the initial assignment of an operator to a
// pipeline step.
type AssignOperatorCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	executionID  kernel.UUID
	operatorID   kernel.UUID
	assignedBy   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOperatorCommand creates the assignment command.
func NewAssignOperatorCommand(
	assignmentID, executionID, operatorID, assignedBy kernel.UUID,
) (AssignOperatorCommand, error) {
	cmd := AssignOperatorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setExecutionID(executionID),
		cmd.setOperatorID(operatorID),
		cmd.setAssignedBy(assignedBy),
	); err != nil {
		return AssignOperatorCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOperatorCommand) Validate() error {
	return c.guard.Validate(ErrAssignOperatorCommandIsNotConstructed)
}

func (c AssignOperatorCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

func (c AssignOperatorCommand) ExecutionID() kernel.UUID {
	return c.executionID
}

func (c AssignOperatorCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c AssignOperatorCommand) AssignedBy() kernel.UUID {
	return c.assignedBy
}

func (c *AssignOperatorCommand) setAssignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.assignmentID = id
	return nil
}

func (c *AssignOperatorCommand) setExecutionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.executionID = id
	return nil
}

func (c *AssignOperatorCommand) setOperatorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.operatorID = id
	return nil
}

func (c *AssignOperatorCommand) setAssignedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.assignedBy = id
	return nil
}
