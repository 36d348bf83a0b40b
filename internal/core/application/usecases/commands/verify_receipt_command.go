package commands

import (
	"errors"

	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrVerifyReceiptCommandIsNotConstructed = errors.New(
	"VerifyReceiptCommand must be created via NewVerifyReceiptCommand constructor",
)

// VerifyReceiptCommand records the operator's verdict on a received batch:
// either the quantities match or a discrepancy is reported.
type VerifyReceiptCommand struct { //nolint:recvcheck //using for validation
	verificationID kernel.UUID
	allocationID   kernel.UUID
	verifiedBy     kernel.UUID
	action         handover.Action
	reason         handover.ReportReason
	actualQuantity *kernel.Quantity
	notes          string

	guard guard.ConstructorGuard
}

// NewVerifyReceiptCommand creates the verification command. For a verified
// receipt the reason must be ReasonNone and the actual quantity nil; for a
// reported one the reason is mandatory and low_qty/high_qty require the
// measured quantity.
func NewVerifyReceiptCommand(
	verificationID, allocationID, verifiedBy kernel.UUID,
	action handover.Action,
	reason handover.ReportReason,
	actualQuantity *kernel.Quantity,
	notes string,
) (VerifyReceiptCommand, error) {
	cmd := VerifyReceiptCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVerificationID(verificationID),
		cmd.setAllocationID(allocationID),
		cmd.setVerifiedBy(verifiedBy),
		cmd.setVerdict(action, reason, actualQuantity),
	); err != nil {
		return VerifyReceiptCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyReceiptCommand) Validate() error {
	return c.guard.Validate(ErrVerifyReceiptCommandIsNotConstructed)
}

func (c VerifyReceiptCommand) VerificationID() kernel.UUID {
	return c.verificationID
}

func (c VerifyReceiptCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

func (c VerifyReceiptCommand) VerifiedBy() kernel.UUID {
	return c.verifiedBy
}

func (c VerifyReceiptCommand) Action() handover.Action {
	return c.action
}

func (c VerifyReceiptCommand) Reason() handover.ReportReason {
	return c.reason
}

func (c VerifyReceiptCommand) ActualQuantity() *kernel.Quantity {
	if c.actualQuantity == nil {
		return nil
	}
	v := *c.actualQuantity
	return &v
}

func (c VerifyReceiptCommand) Notes() string {
	return c.notes
}

func (c *VerifyReceiptCommand) setVerificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.verificationID = id
	return nil
}

func (c *VerifyReceiptCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.allocationID = id
	return nil
}

func (c *VerifyReceiptCommand) setVerifiedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.verifiedBy = id
	return nil
}

func (c *VerifyReceiptCommand) setVerdict(
	action handover.Action,
	reason handover.ReportReason,
	actualQuantity *kernel.Quantity,
) error {
	if err := action.Validate(); err != nil {
		return err
	}

	if action == handover.ActionVerified {
		if reason != handover.ReasonNone || actualQuantity != nil {
			return errs.NewValueIsInvalidError("reason")
		}
		c.action = action
		return nil
	}

	if err := reason.Validate(); err != nil {
		return err
	}
	if reason.RequiresActualQuantity() && actualQuantity == nil {
		return errs.NewValueIsRequiredError("actualQuantity")
	}

	c.action = action
	c.reason = reason
	if actualQuantity != nil {
		v := *actualQuantity
		c.actualQuantity = &v
	}
	return nil
}
