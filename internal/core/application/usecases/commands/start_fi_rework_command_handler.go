package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// StartFIReworkCommandHandler starts a pending final-inspection rework cycle.
type StartFIReworkCommandHandler struct {
	uowFactory ReworkUoWFactory
}

// NewStartFIReworkCommandHandler creates a handler for final-inspection
// rework start.
func NewStartFIReworkCommandHandler(uowFactory ReworkUoWFactory) StartFIReworkCommandHandler {
	return StartFIReworkCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command.
func (h *StartFIReworkCommandHandler) Handle(ctx context.Context, cmd StartFIReworkCommand) error {
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

	if err = fiRework.Start(now); err != nil {
		return err
	}

	if err = uow.FIReworkRepository().Update(ctx, fiRework); err != nil {
		return err
	}

	batchID := fiRework.BatchID()
	executionID := fiRework.DefectiveExecutionID()
	reworkQuantity := fiRework.Quantity()
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
