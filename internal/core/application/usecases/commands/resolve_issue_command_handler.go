package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// ResolveIssueCommandHandler closes a reported discrepancy. Resolution lifts
// any remaining hold so the batch never stays parked on a closed report.
type ResolveIssueCommandHandler struct {
	uowFactory FlowUoWFactory
}

// NewResolveIssueCommandHandler creates a handler for issue resolution.
func NewResolveIssueCommandHandler(uowFactory FlowUoWFactory) ResolveIssueCommandHandler {
	return ResolveIssueCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resolution command.
func (h *ResolveIssueCommandHandler) Handle(ctx context.Context, cmd ResolveIssueCommand) error {
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

	verification, err := uow.VerificationRepository().Get(ctx, cmd.VerificationID())
	if err != nil {
		return err
	}

	if err = verification.ResolveIssue(cmd.ResolvedBy(), cmd.Notes(), now); err != nil {
		return err
	}

	allocation, err := uow.AllocationRepository().Get(ctx, verification.AllocationID())
	if err != nil {
		return err
	}

	b, err := uow.BatchRepository().Get(ctx, allocation.BatchID())
	if err != nil {
		return err
	}

	if b.Status() == batch.OnHold {
		if err = b.Release(); err != nil {
			return err
		}
	}

	if err = uow.VerificationRepository().Update(ctx, verification); err != nil {
		return err
	}

	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return err
	}

	batchID := b.ID()
	executionID := allocation.ExecutionID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityIssueResolved, cmd.ResolvedBy(), now,
		ledger.ActivityDetails{
			BatchID:     &batchID,
			ExecutionID: &executionID,
			Remarks:     cmd.Notes(),
		},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
