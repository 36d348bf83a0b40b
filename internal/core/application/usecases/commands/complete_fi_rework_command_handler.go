package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/ports"
)

// CompleteFIReworkCommandHandler closes the shop-floor part of a
// final-inspection rework cycle and notifies quality that the batch is ready
// for re-inspection.
type CompleteFIReworkCommandHandler struct {
	uowFactory ReworkUoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteFIReworkCommandHandler creates a handler for final-inspection
// rework completion.
func NewCompleteFIReworkCommandHandler(
	uowFactory ReworkUoWFactory,
	publisher ports.EventPublisher,
) CompleteFIReworkCommandHandler {
	return CompleteFIReworkCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the completion command.
func (h *CompleteFIReworkCommandHandler) Handle(ctx context.Context, cmd CompleteFIReworkCommand) error {
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

	fiRework, err := uow.FIReworkRepository().Get(ctx, cmd.FIReworkID())
	if err != nil {
		return err
	}

	if err = fiRework.Complete(now); err != nil {
		return err
	}

	if err = uow.FIReworkRepository().Update(ctx, fiRework); err != nil {
		return err
	}

	batchID := fiRework.BatchID()
	executionID := fiRework.DefectiveExecutionID()
	reworkQuantity := fiRework.Quantity()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityReworkCompleted, cmd.CompletedBy(), now,
		ledger.ActivityDetails{
			BatchID:        &batchID,
			ExecutionID:    &executionID,
			ReworkQuantity: &reworkQuantity,
			Remarks:        "awaiting re-inspection",
		},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventFGVerificationRequired,
		Recipients: []ports.RecipientRole{ports.RoleQualityInspector},
		OccurredAt: now,
		BatchID:    &batchID,
		Attributes: map[string]string{
			"rework_quantity": reworkQuantity.String(),
		},
	})

	return nil
}
