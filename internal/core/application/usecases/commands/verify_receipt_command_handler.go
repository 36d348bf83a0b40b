package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"
)

// VerifyReceiptCommandHandler closes the transit record with the operator's
// verdict. A reported discrepancy puts the batch on hold in the same
// transaction.
type VerifyReceiptCommandHandler struct {
	uowFactory FlowUoWFactory
	publisher  ports.EventPublisher
}

// NewVerifyReceiptCommandHandler creates a handler for receipt verification.
func NewVerifyReceiptCommandHandler(
	uowFactory FlowUoWFactory,
	publisher ports.EventPublisher,
) VerifyReceiptCommandHandler {
	return VerifyReceiptCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the verification command.
func (h *VerifyReceiptCommandHandler) Handle(ctx context.Context, cmd VerifyReceiptCommand) error { //nolint:funlen //transaction script
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	allocation, err := uow.AllocationRepository().Get(ctx, cmd.AllocationID())
	if err != nil {
		return err
	}

	if allocation.Status() != process.AllocationReceived {
		return errs.NewInvalidStateTransitionError("verify receipt",
			allocation.Status().String(), process.AllocationReceived.String())
	}

	receiptLog, err := uow.ReceiptLogRepository().GetOpenByAllocationID(ctx, allocation.ID())
	if err != nil {
		return err
	}
	if receiptLog == nil {
		return errs.NewObjectNotFoundError("allocationID", allocation.ID())
	}

	expected := receiptLog.HandoverQuantity()

	var verification *handover.BatchReceiptVerification
	if cmd.Action() == handover.ActionVerified {
		verification, err = handover.NewVerifiedReceipt(
			cmd.VerificationID(), allocation.ID(), cmd.VerifiedBy(),
			expected, cmd.Notes(), now,
		)
	} else {
		verification, err = handover.NewReportedReceipt(
			cmd.VerificationID(), allocation.ID(), cmd.VerifiedBy(),
			cmd.Reason(), expected, cmd.ActualQuantity(), cmd.Notes(), now,
		)
	}
	if err != nil {
		return err
	}

	received := expected
	if actual := cmd.ActualQuantity(); actual != nil {
		received = *actual
	}

	if err = receiptLog.ConfirmReceipt(verification, received, now); err != nil {
		return err
	}

	b, err := uow.BatchRepository().Get(ctx, allocation.BatchID())
	if err != nil {
		return err
	}

	reported := cmd.Action() == handover.ActionReported
	if reported {
		if err = b.Hold(); err != nil {
			return err
		}
	}

	if err = uow.VerificationRepository().Add(ctx, verification); err != nil {
		return err
	}

	if err = uow.ReceiptLogRepository().Update(ctx, receiptLog); err != nil {
		return err
	}

	if reported {
		if err = uow.BatchRepository().Update(ctx, b); err != nil {
			return err
		}
	}

	batchID := b.ID()
	executionID := allocation.ExecutionID()

	activityType := ledger.ActivityBatchVerified
	if reported {
		activityType = ledger.ActivityBatchReported
	}
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), activityType, cmd.VerifiedBy(), now,
		ledger.ActivityDetails{
			BatchID:     &batchID,
			ExecutionID: &executionID,
			Reason:      cmd.Reason().String(),
			Remarks:     cmd.Notes(),
		},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	if reported {
		var hold *ledger.ProcessActivityLog
		hold, err = ledger.NewProcessActivityLog(
			kernel.NewUUID(), ledger.ActivityHoldApplied, cmd.VerifiedBy(), now,
			ledger.ActivityDetails{
				BatchID:     &batchID,
				ExecutionID: &executionID,
				Reason:      cmd.Reason().String(),
			},
		)
		if err != nil {
			return err
		}
		if err = uow.LedgerRepository().Append(ctx, hold); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if reported {
		h.publisher.Publish(ctx, ports.Event{
			Kind:        ports.EventBatchReported,
			Recipients:  []ports.RecipientRole{ports.RoleSupervisor, ports.RoleProductionHead},
			OccurredAt:  now,
			BatchID:     &batchID,
			ExecutionID: &executionID,
			Attributes: map[string]string{
				"batch_number": b.BatchNumber(),
				"reason":       cmd.Reason().String(),
			},
		})
	}

	return nil
}
