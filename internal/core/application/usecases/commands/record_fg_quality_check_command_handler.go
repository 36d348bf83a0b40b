package commands

import (
	"context"
	"strconv"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/ports"
)

// RecordFGQualityCheckCommandHandler stamps the finished-goods quality
// verdict on a pending verification. A passed batch becomes eligible for
// dispatch; a failed one stays blocked until quality disposes of it.
type RecordFGQualityCheckCommandHandler struct {
	uowFactory FlowUoWFactory
	publisher  ports.EventPublisher
}

// NewRecordFGQualityCheckCommandHandler creates a handler for finished-goods
// quality checks.
func NewRecordFGQualityCheckCommandHandler(
	uowFactory FlowUoWFactory,
	publisher ports.EventPublisher,
) RecordFGQualityCheckCommandHandler {
	return RecordFGQualityCheckCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the quality-check command.
func (h *RecordFGQualityCheckCommandHandler) Handle(ctx context.Context, cmd RecordFGQualityCheckCommand) error {
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

	verification, err := uow.FGVerificationRepository().Get(ctx, cmd.VerificationID())
	if err != nil {
		return err
	}

	if err = verification.RecordQualityCheck(cmd.CheckedBy(), cmd.Passed(), cmd.Notes(), now); err != nil {
		return err
	}

	b, err := uow.BatchRepository().Get(ctx, verification.BatchID())
	if err != nil {
		return err
	}

	if err = uow.FGVerificationRepository().Update(ctx, verification); err != nil {
		return err
	}

	batchID := b.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityFGQualityChecked, cmd.CheckedBy(), now,
		ledger.ActivityDetails{BatchID: &batchID, Remarks: cmd.Notes()},
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
		Kind:       ports.EventQualityCheckResult,
		Recipients: []ports.RecipientRole{ports.RoleProductionHead},
		OccurredAt: now,
		BatchID:    &batchID,
		Attributes: map[string]string{
			"batch_number": b.BatchNumber(),
			"passed":       strconv.FormatBool(cmd.Passed()),
		},
	})

	return nil
}
