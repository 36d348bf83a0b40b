package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// ReturnBatchCommandHandler closes an allocation as returned. The batch keeps
// its rm_allocated state, and because a returned allocation no longer counts
// as open it can be allocated again to the right step.
type ReturnBatchCommandHandler struct {
	uowFactory FlowUoWFactory
}

// NewReturnBatchCommandHandler creates a handler for batch returns.
func NewReturnBatchCommandHandler(uowFactory FlowUoWFactory) ReturnBatchCommandHandler {
	return ReturnBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch-return command.
func (h *ReturnBatchCommandHandler) Handle(ctx context.Context, cmd ReturnBatchCommand) error {
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

	if err = allocation.Return(); err != nil {
		return err
	}

	if err = uow.AllocationRepository().Update(ctx, allocation); err != nil {
		return err
	}

	batchID := allocation.BatchID()
	executionID := allocation.ExecutionID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityBatchReturned, cmd.ReturnedBy(), now,
		ledger.ActivityDetails{
			BatchID:     &batchID,
			ExecutionID: &executionID,
			Remarks:     cmd.Remarks(),
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
