package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrResolveIssueCommandIsNotConstructed = errors.New(
	"ResolveIssueCommand must be created via NewResolveIssueCommand constructor",
)

// ResolveIssueCommand closes a reported discrepancy. Resolution notes are
// mandatory: the report and its outcome travel together in the audit trail.
type ResolveIssueCommand struct { //nolint:recvcheck //using for validation
	verificationID kernel.UUID
	resolvedBy     kernel.UUID
	notes          string

	guard guard.ConstructorGuard
}

// NewResolveIssueCommand creates the resolution command.
func NewResolveIssueCommand(
	verificationID, resolvedBy kernel.UUID,
	notes string,
) (ResolveIssueCommand, error) {
	cmd := ResolveIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVerificationID(verificationID),
		cmd.setResolvedBy(resolvedBy),
		cmd.setNotes(notes),
	); err != nil {
		return ResolveIssueCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveIssueCommand) Validate() error {
	return c.guard.Validate(ErrResolveIssueCommandIsNotConstructed)
}

func (c ResolveIssueCommand) VerificationID() kernel.UUID {
	return c.verificationID
}

func (c ResolveIssueCommand) ResolvedBy() kernel.UUID {
	return c.resolvedBy
}

func (c ResolveIssueCommand) Notes() string {
	return c.notes
}

func (c *ResolveIssueCommand) setVerificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.verificationID = id
	return nil
}

func (c *ResolveIssueCommand) setResolvedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.resolvedBy = id
	return nil
}

func (c *ResolveIssueCommand) setNotes(notes string) error {
	if notes == "" {
		return errs.NewValueIsRequiredError("notes")
	}
	c.notes = notes
	return nil
}
