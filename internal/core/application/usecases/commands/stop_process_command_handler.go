package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/pkg/errs"
)

// StopProcessCommandHandler opens a downtime stop and parks the step. One
// open stop per step at a time.
type StopProcessCommandHandler struct {
	uowFactory DowntimeUoWFactory
}

// NewStopProcessCommandHandler creates a handler for process stops.
func NewStopProcessCommandHandler(uowFactory DowntimeUoWFactory) StopProcessCommandHandler {
	return StopProcessCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the stop command.
func (h *StopProcessCommandHandler) Handle(ctx context.Context, cmd StopProcessCommand) error {
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

	execution, err := uow.ExecutionRepository().Get(ctx, cmd.ExecutionID())
	if err != nil {
		return err
	}

	open, err := uow.StopRepository().GetOpenByExecutionID(ctx, execution.ID())
	if err != nil {
		return err
	}
	if open != nil {
		return errs.NewInvalidStateTransitionError("stop process",
			"open stop exists", "no open stop")
	}

	stop, err := downtime.NewProcessStop(
		cmd.StopID(), execution.ID(), cmd.Reason(), cmd.Remarks(), cmd.StoppedBy(), now,
	)
	if err != nil {
		return err
	}

	if err = execution.Hold(); err != nil {
		return err
	}

	if err = uow.StopRepository().Add(ctx, stop); err != nil {
		return err
	}

	if err = uow.ExecutionRepository().Update(ctx, execution); err != nil {
		return err
	}

	executionID := execution.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityProcessStopped, cmd.StoppedBy(), now,
		ledger.ActivityDetails{
			ExecutionID: &executionID,
			Reason:      cmd.Reason().String(),
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
