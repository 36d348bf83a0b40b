package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrReinspectCommandIsNotConstructed = errors.New(
	"ReinspectCommand must be created via NewReinspectCommand constructor",
)

// ReinspectCommand records the quality verdict after a final-inspection
// rework cycle. A failed verdict must describe the remaining defect so the
// next cycle knows what to fix.
type ReinspectCommand struct { //nolint:recvcheck //using for validation
	fiReworkID    kernel.UUID
	nextCycleID   kernel.UUID
	reinspectedBy kernel.UUID
	passed        bool
	defectRemarks string

	guard guard.ConstructorGuard
}

// NewReinspectCommand creates the re-inspection command. The next cycle id is
// consumed only on a failed verdict.
func NewReinspectCommand(
	fiReworkID, nextCycleID, reinspectedBy kernel.UUID,
	passed bool,
	defectRemarks string,
) (ReinspectCommand, error) {
	cmd := ReinspectCommand{
		passed: passed,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setFIReworkID(fiReworkID),
		cmd.setNextCycleID(nextCycleID),
		cmd.setReinspectedBy(reinspectedBy),
		cmd.setDefectRemarks(defectRemarks, passed),
	); err != nil {
		return ReinspectCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReinspectCommand) Validate() error {
	return c.guard.Validate(ErrReinspectCommandIsNotConstructed)
}

func (c ReinspectCommand) FIReworkID() kernel.UUID {
	return c.fiReworkID
}

func (c ReinspectCommand) NextCycleID() kernel.UUID {
	return c.nextCycleID
}

func (c ReinspectCommand) ReinspectedBy() kernel.UUID {
	return c.reinspectedBy
}

func (c ReinspectCommand) Passed() bool {
	return c.passed
}

func (c ReinspectCommand) DefectRemarks() string {
	return c.defectRemarks
}

func (c *ReinspectCommand) setFIReworkID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.fiReworkID = id
	return nil
}

func (c *ReinspectCommand) setNextCycleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.nextCycleID = id
	return nil
}

func (c *ReinspectCommand) setReinspectedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.reinspectedBy = id
	return nil
}

func (c *ReinspectCommand) setDefectRemarks(defectRemarks string, passed bool) error {
	if !passed && defectRemarks == "" {
		return errs.NewValueIsRequiredError("defectRemarks")
	}
	c.defectRemarks = defectRemarks
	return nil
}
