package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// ClearHoldCommandHandler releases a held batch back to the work queue. The
// underlying report stays open until ResolveIssue closes it.
type ClearHoldCommandHandler struct {
	uowFactory FlowUoWFactory
}

// NewClearHoldCommandHandler creates a handler for hold clearing.
func NewClearHoldCommandHandler(uowFactory FlowUoWFactory) ClearHoldCommandHandler {
	return ClearHoldCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the hold-clearing command.
func (h *ClearHoldCommandHandler) Handle(ctx context.Context, cmd ClearHoldCommand) error {
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

	if err = verification.ClearHold(cmd.ClearedBy(), now); err != nil {
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
		kernel.NewUUID(), ledger.ActivityHoldCleared, cmd.ClearedBy(), now,
		ledger.ActivityDetails{BatchID: &batchID, ExecutionID: &executionID},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
