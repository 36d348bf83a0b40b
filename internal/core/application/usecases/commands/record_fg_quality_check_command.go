package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrRecordFGQualityCheckCommandIsNotConstructed = errors.New(
	"RecordFGQualityCheckCommand must be created via NewRecordFGQualityCheckCommand constructor",
)

// RecordFGQualityCheckCommand records the finished-goods quality verdict for
// a batch awaiting verification.
type RecordFGQualityCheckCommand struct { //nolint:recvcheck //using for validation
	verificationID kernel.UUID
	checkedBy      kernel.UUID
	passed         bool
	notes          string

	guard guard.ConstructorGuard
}

// NewRecordFGQualityCheckCommand creates the quality-check command. Notes are
// mandatory on a failed verdict.
func NewRecordFGQualityCheckCommand(
	verificationID, checkedBy kernel.UUID,
	passed bool,
	notes string,
) (RecordFGQualityCheckCommand, error) {
	cmd := RecordFGQualityCheckCommand{
		passed: passed,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVerificationID(verificationID),
		cmd.setCheckedBy(checkedBy),
		cmd.setNotes(notes, passed),
	); err != nil {
		return RecordFGQualityCheckCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordFGQualityCheckCommand) Validate() error {
	return c.guard.Validate(ErrRecordFGQualityCheckCommandIsNotConstructed)
}

func (c RecordFGQualityCheckCommand) VerificationID() kernel.UUID {
	return c.verificationID
}

func (c RecordFGQualityCheckCommand) CheckedBy() kernel.UUID {
	return c.checkedBy
}

func (c RecordFGQualityCheckCommand) Passed() bool {
	return c.passed
}

func (c RecordFGQualityCheckCommand) Notes() string {
	return c.notes
}

func (c *RecordFGQualityCheckCommand) setVerificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.verificationID = id
	return nil
}

func (c *RecordFGQualityCheckCommand) setCheckedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.checkedBy = id
	return nil
}

func (c *RecordFGQualityCheckCommand) setNotes(notes string, passed bool) error {
	if !passed && notes == "" {
		return errs.NewValueIsRequiredError("notes")
	}
	c.notes = notes
	return nil
}
