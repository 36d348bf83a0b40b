package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrReassignOperatorCommandIsNotConstructed = errors.New(
	"ReassignOperatorCommand must be created via NewReassignOperatorCommand constructor",
)

// ReassignOperatorCommand replaces the active operator on a pipeline step.
// The reason is mandatory because reassignment history must explain itself.
type ReassignOperatorCommand struct { //nolint:recvcheck //using for validation
	newAssignmentID kernel.UUID
	executionID     kernel.UUID
	newOperatorID   kernel.UUID
	reassignedBy    kernel.UUID
	reason          string

	guard guard.ConstructorGuard
}

// NewReassignOperatorCommand creates the reassignment command.
func NewReassignOperatorCommand(
	newAssignmentID, executionID, newOperatorID, reassignedBy kernel.UUID,
	reason string,
) (ReassignOperatorCommand, error) {
	cmd := ReassignOperatorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNewAssignmentID(newAssignmentID),
		cmd.setExecutionID(executionID),
		cmd.setNewOperatorID(newOperatorID),
		cmd.setReassignedBy(reassignedBy),
		cmd.setReason(reason),
	); err != nil {
		return ReassignOperatorCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOperatorCommand) Validate() error {
	return c.guard.Validate(ErrReassignOperatorCommandIsNotConstructed)
}

func (c ReassignOperatorCommand) NewAssignmentID() kernel.UUID {
	return c.newAssignmentID
}

func (c ReassignOperatorCommand) ExecutionID() kernel.UUID {
	return c.executionID
}

func (c ReassignOperatorCommand) NewOperatorID() kernel.UUID {
	return c.newOperatorID
}

func (c ReassignOperatorCommand) ReassignedBy() kernel.UUID {
	return c.reassignedBy
}

func (c ReassignOperatorCommand) Reason() string {
	return c.reason
}

func (c *ReassignOperatorCommand) setNewAssignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.newAssignmentID = id
	return nil
}

func (c *ReassignOperatorCommand) setExecutionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.executionID = id
	return nil
}

func (c *ReassignOperatorCommand) setNewOperatorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.newOperatorID = id
	return nil
}

func (c *ReassignOperatorCommand) setReassignedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.reassignedBy = id
	return nil
}

func (c *ReassignOperatorCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
