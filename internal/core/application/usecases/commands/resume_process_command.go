package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrResumeProcessCommandIsNotConstructed = errors.New(
	"ResumeProcessCommand must be created via NewResumeProcessCommand constructor",
)

// ResumeProcessCommand closes an open downtime stop.
type ResumeProcessCommand struct { //nolint:recvcheck //using for validation
	stopID    kernel.UUID
	resumedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewResumeProcessCommand creates the resume command.
func NewResumeProcessCommand(stopID, resumedBy kernel.UUID) (ResumeProcessCommand, error) {
	cmd := ResumeProcessCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStopID(stopID),
		cmd.setResumedBy(resumedBy),
	); err != nil {
		return ResumeProcessCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResumeProcessCommand) Validate() error {
	return c.guard.Validate(ErrResumeProcessCommandIsNotConstructed)
}

func (c ResumeProcessCommand) StopID() kernel.UUID {
	return c.stopID
}

func (c ResumeProcessCommand) ResumedBy() kernel.UUID {
	return c.resumedBy
}

func (c *ResumeProcessCommand) setStopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.stopID = id
	return nil
}

func (c *ResumeProcessCommand) setResumedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.resumedBy = id
	return nil
}
