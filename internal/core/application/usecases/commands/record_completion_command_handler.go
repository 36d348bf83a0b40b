package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/rework"
	"mestrace/internal/core/ports"
)

// RecordCompletionCommandHandler persists the OK/scrap/rework split of a
// processing pass. Conservation is checked by the completion record itself;
// a positive rework part atomically opens a rework job for the step's
// supervisor.
type RecordCompletionCommandHandler struct {
	uowFactory ReworkUoWFactory
	publisher  ports.EventPublisher
}

// NewRecordCompletionCommandHandler creates a handler for completion
// recording.
func NewRecordCompletionCommandHandler(
	uowFactory ReworkUoWFactory,
	publisher ports.EventPublisher,
) RecordCompletionCommandHandler {
	return RecordCompletionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the completion command.
func (h *RecordCompletionCommandHandler) Handle(ctx context.Context, cmd RecordCompletionCommand) error { //nolint:funlen //transaction script
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	completion, err := rework.NewBatchProcessCompletion(
		cmd.CompletionID(), cmd.BatchID(), cmd.ExecutionID(), cmd.CompletedBy(),
		cmd.InputQuantity(), cmd.OKQuantity(), cmd.ScrapQuantity(), cmd.ReworkQuantity(),
		cmd.Remarks(), now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BatchRepository().Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	if err = b.RecordOutcome(cmd.OKQuantity(), cmd.ScrapQuantity()); err != nil {
		return err
	}

	if err = uow.CompletionRepository().Add(ctx, completion); err != nil {
		return err
	}

	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return err
	}

	var reworkJob *rework.ReworkBatch
	if completion.RequiresRework() {
		var lastCycle int
		lastCycle, err = uow.CompletionRepository().GetLatestCycleNumber(
			ctx, cmd.BatchID(), cmd.ExecutionID())
		if err != nil {
			return err
		}

		reworkJob, err = rework.NewReworkBatch(
			cmd.ReworkBatchID(), cmd.BatchID(), cmd.ExecutionID(), completion.ID(),
			cmd.ReworkQuantity(), rework.SourceProcessSupervisor, cmd.SupervisorID(),
			lastCycle+1, cmd.DefectDescription(), now,
		)
		if err != nil {
			return err
		}

		if err = uow.ReworkBatchRepository().Add(ctx, reworkJob); err != nil {
			return err
		}
	}

	batchID := cmd.BatchID()
	executionID := cmd.ExecutionID()
	okQuantity := cmd.OKQuantity()
	scrapQuantity := cmd.ScrapQuantity()
	reworkQuantity := cmd.ReworkQuantity()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityBatchCompleted, cmd.CompletedBy(), now,
		ledger.ActivityDetails{
			BatchID:        &batchID,
			ExecutionID:    &executionID,
			OKQuantity:     &okQuantity,
			ScrapQuantity:  &scrapQuantity,
			ReworkQuantity: &reworkQuantity,
			Remarks:        cmd.Remarks(),
		},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	if reworkJob != nil {
		var created *ledger.ProcessActivityLog
		created, err = ledger.NewProcessActivityLog(
			kernel.NewUUID(), ledger.ActivityReworkCreated, cmd.CompletedBy(), now,
			ledger.ActivityDetails{
				BatchID:        &batchID,
				ExecutionID:    &executionID,
				ReworkQuantity: &reworkQuantity,
				Reason:         cmd.DefectDescription(),
			},
		)
		if err != nil {
			return err
		}
		if err = uow.LedgerRepository().Append(ctx, created); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if reworkJob != nil {
		h.publisher.Publish(ctx, ports.Event{
			Kind:        ports.EventQualityCheckResult,
			Recipients:  []ports.RecipientRole{ports.RoleSupervisor},
			OccurredAt:  now,
			BatchID:     &batchID,
			ExecutionID: &executionID,
			Attributes: map[string]string{
				"batch_number":    b.BatchNumber(),
				"rework_quantity": reworkQuantity.String(),
			},
		})
	}

	return nil
}
