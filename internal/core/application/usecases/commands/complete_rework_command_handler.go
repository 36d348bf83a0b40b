package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// CompleteReworkCommandHandler closes a rework job. The job itself produces
// the rework-cycle completion row, which conserves the reworked quantity and
// can never route material to rework again.
type CompleteReworkCommandHandler struct {
	uowFactory ReworkUoWFactory
}

// NewCompleteReworkCommandHandler creates a handler for rework completion.
func NewCompleteReworkCommandHandler(uowFactory ReworkUoWFactory) CompleteReworkCommandHandler {
	return CompleteReworkCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rework completion command.
func (h *CompleteReworkCommandHandler) Handle(ctx context.Context, cmd CompleteReworkCommand) error {
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

	completion, err := job.Complete(
		cmd.CompletionID(), cmd.CompletedBy(),
		cmd.OKQuantity(), cmd.ScrapQuantity(), cmd.Remarks(), now,
	)
	if err != nil {
		return err
	}

	b, err := uow.BatchRepository().Get(ctx, job.BatchID())
	if err != nil {
		return err
	}

	if err = b.RecordOutcome(cmd.OKQuantity(), cmd.ScrapQuantity()); err != nil {
		return err
	}

	if err = uow.ReworkBatchRepository().Update(ctx, job); err != nil {
		return err
	}

	if err = uow.CompletionRepository().Add(ctx, completion); err != nil {
		return err
	}

	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return err
	}

	batchID := job.BatchID()
	executionID := job.ExecutionID()
	okQuantity := cmd.OKQuantity()
	scrapQuantity := cmd.ScrapQuantity()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityReworkCompleted, cmd.CompletedBy(), now,
		ledger.ActivityDetails{
			BatchID:       &batchID,
			ExecutionID:   &executionID,
			OKQuantity:    &okQuantity,
			ScrapQuantity: &scrapQuantity,
			Remarks:       cmd.Remarks(),
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
