package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrCompleteFIReworkCommandIsNotConstructed = errors.New(
	"CompleteFIReworkCommand must be created via NewCompleteFIReworkCommand constructor",
)

// CompleteFIReworkCommand marks a final-inspection rework cycle done on the
// shop floor. The cycle then awaits re-inspection; it never resolves itself.
type CompleteFIReworkCommand struct { //nolint:recvcheck //using for validation
	fiReworkID  kernel.UUID
	completedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteFIReworkCommand creates the completion command.
func NewCompleteFIReworkCommand(fiReworkID, completedBy kernel.UUID) (CompleteFIReworkCommand, error) {
	cmd := CompleteFIReworkCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setFIReworkID(fiReworkID),
		cmd.setCompletedBy(completedBy),
	); err != nil {
		return CompleteFIReworkCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteFIReworkCommand) Validate() error {
	return c.guard.Validate(ErrCompleteFIReworkCommandIsNotConstructed)
}

func (c CompleteFIReworkCommand) FIReworkID() kernel.UUID {
	return c.fiReworkID
}

func (c CompleteFIReworkCommand) CompletedBy() kernel.UUID {
	return c.completedBy
}

func (c *CompleteFIReworkCommand) setFIReworkID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.fiReworkID = id
	return nil
}

func (c *CompleteFIReworkCommand) setCompletedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.completedBy = id
	return nil
}
