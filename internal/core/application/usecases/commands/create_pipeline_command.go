package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/guard"
)

var ErrCreatePipelineCommandIsNotConstructed = errors.New(
	"CreatePipelineCommand must be created via NewCreatePipelineCommand constructor",
)

// CreatePipelineCommand materializes an MO's process pipeline from the
// process catalog, one pending step per catalog definition.
type CreatePipelineCommand struct { //nolint:recvcheck //using for validation
	moID      kernel.UUID
	createdBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePipelineCommand creates the pipeline setup command.
func NewCreatePipelineCommand(moID, createdBy kernel.UUID) (CreatePipelineCommand, error) {
	cmd := CreatePipelineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMOID(moID),
		cmd.setCreatedBy(createdBy),
	); err != nil {
		return CreatePipelineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePipelineCommand) Validate() error {
	return c.guard.Validate(ErrCreatePipelineCommandIsNotConstructed)
}

func (c CreatePipelineCommand) MOID() kernel.UUID {
	return c.moID
}

func (c CreatePipelineCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *CreatePipelineCommand) setMOID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.moID = id
	return nil
}

func (c *CreatePipelineCommand) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.createdBy = id
	return nil
}
