package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// StartReworkCommandHandler starts a pending rework job.
type StartReworkCommandHandler struct {
	uowFactory ReworkUoWFactory
}

// NewStartReworkCommandHandler creates a handler for rework start.
func NewStartReworkCommandHandler(uowFactory ReworkUoWFactory) StartReworkCommandHandler {
	return StartReworkCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command.
func (h *StartReworkCommandHandler) Handle(ctx context.Context, cmd StartReworkCommand) error {
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

	job, err := uow.ReworkBatchRepository().Get(ctx, cmd.ReworkBatchID())
	if err != nil {
		return err
	}

	if err = job.Start(now); err != nil {
		return err
	}

	if err = uow.ReworkBatchRepository().Update(ctx, job); err != nil {
		return err
	}

	batchID := job.BatchID()
	executionID := job.ExecutionID()
	reworkQuantity := job.Quantity()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityReworkStarted, cmd.StartedBy(), now,
		ledger.ActivityDetails{
			BatchID:        &batchID,
			ExecutionID:    &executionID,
			ReworkQuantity: &reworkQuantity,
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
