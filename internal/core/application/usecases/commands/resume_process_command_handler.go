package commands

import (
	"context"
	"strconv"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/process"
)

// ResumeProcessCommandHandler closes a stop with floor-minute downtime. The
// step returns to in progress only if it is still parked by this stop; a
// step failed or completed in the meantime keeps its state.
type ResumeProcessCommandHandler struct {
	uowFactory DowntimeUoWFactory
}

// NewResumeProcessCommandHandler creates a handler for process resumption.
func NewResumeProcessCommandHandler(uowFactory DowntimeUoWFactory) ResumeProcessCommandHandler {
	return ResumeProcessCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resume command.
func (h *ResumeProcessCommandHandler) Handle(ctx context.Context, cmd ResumeProcessCommand) error {
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

	stop, err := uow.StopRepository().Get(ctx, cmd.StopID())
	if err != nil {
		return err
	}

	if err = stop.Resume(cmd.ResumedBy(), now); err != nil {
		return err
	}

	execution, err := uow.ExecutionRepository().Get(ctx, stop.ExecutionID())
	if err != nil {
		return err
	}

	if execution.Status() == process.ExecutionOnHold {
		if err = execution.Resume(); err != nil {
			return err
		}
		if err = uow.ExecutionRepository().Update(ctx, execution); err != nil {
			return err
		}
	}

	if err = uow.StopRepository().Update(ctx, stop); err != nil {
		return err
	}

	downtimeMinutes := 0
	if minutes := stop.DowntimeMinutes(); minutes != nil {
		downtimeMinutes = *minutes
	}

	executionID := execution.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityProcessResumed, cmd.ResumedBy(), now,
		ledger.ActivityDetails{
			ExecutionID: &executionID,
			Reason:      stop.Reason().String(),
			Remarks:     "downtime " + strconv.Itoa(downtimeMinutes) + " min",
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
