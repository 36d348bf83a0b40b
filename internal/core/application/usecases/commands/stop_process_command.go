package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrStopProcessCommandIsNotConstructed = errors.New(
	"StopProcessCommand must be created via NewStopProcessCommand constructor",
)

// StopProcessCommand records an unplanned or planned halt of a pipeline step.
type StopProcessCommand struct { //nolint:recvcheck //using for validation
	stopID      kernel.UUID
	executionID kernel.UUID
	reason      downtime.StopReason
	remarks     string
	stoppedBy   kernel.UUID

	guard guard.ConstructorGuard
}

// NewStopProcessCommand creates the stop command.
func NewStopProcessCommand(
	stopID, executionID kernel.UUID,
	reason downtime.StopReason,
	remarks string,
	stoppedBy kernel.UUID,
) (StopProcessCommand, error) {
	cmd := StopProcessCommand{
		remarks: remarks,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStopID(stopID),
		cmd.setExecutionID(executionID),
		cmd.setReason(reason),
		cmd.setStoppedBy(stoppedBy),
	); err != nil {
		return StopProcessCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StopProcessCommand) Validate() error {
	return c.guard.Validate(ErrStopProcessCommandIsNotConstructed)
}

func (c StopProcessCommand) StopID() kernel.UUID {
	return c.stopID
}

func (c StopProcessCommand) ExecutionID() kernel.UUID {
	return c.executionID
}

func (c StopProcessCommand) Reason() downtime.StopReason {
	return c.reason
}

func (c StopProcessCommand) Remarks() string {
	return c.remarks
}

func (c StopProcessCommand) StoppedBy() kernel.UUID {
	return c.stoppedBy
}

func (c *StopProcessCommand) setStopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.stopID = id
	return nil
}

func (c *StopProcessCommand) setExecutionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.executionID = id
	return nil
}

func (c *StopProcessCommand) setReason(reason downtime.StopReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	c.reason = reason
	return nil
}

func (c *StopProcessCommand) setStoppedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.stoppedBy = id
	return nil
}
