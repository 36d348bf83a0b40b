package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// StartProcessingCommandHandler moves a received allocation to in-process,
// recording that the operator has actually begun working the batch at the
// step rather than just holding it.
type StartProcessingCommandHandler struct {
	uowFactory FlowUoWFactory
}

// NewStartProcessingCommandHandler creates a handler for processing starts.
func NewStartProcessingCommandHandler(uowFactory FlowUoWFactory) StartProcessingCommandHandler {
	return StartProcessingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the processing-start command.
func (h *StartProcessingCommandHandler) Handle(ctx context.Context, cmd StartProcessingCommand) error {
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

	if err = allocation.StartProcessing(); err != nil {
		return err
	}

	if err = uow.AllocationRepository().Update(ctx, allocation); err != nil {
		return err
	}

	batchID := allocation.BatchID()
	executionID := allocation.ExecutionID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityProcessStarted, cmd.StartedBy(), now,
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
