package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// RejectMOCommandHandler moves a pending MO to the terminal rejected state.
type RejectMOCommandHandler struct {
	uowFactory MOUoWFactory
}

// NewRejectMOCommandHandler creates a handler for MO rejection.
func NewRejectMOCommandHandler(uowFactory MOUoWFactory) RejectMOCommandHandler {
	return RejectMOCommandHandler{uowFactory: uowFactory}
}

// Handle processes the rejection command.
func (h *RejectMOCommandHandler) Handle(ctx context.Context, cmd RejectMOCommand) error {
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

	mo, err := uow.MORepository().Get(ctx, cmd.MOID())
	if err != nil {
		return err
	}

	if err = mo.Reject(cmd.RejectorID(), cmd.Notes(), now); err != nil {
		return err
	}

	if err = uow.MORepository().Update(ctx, mo); err != nil {
		return err
	}

	moID := mo.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityMORejected, cmd.RejectorID(), now,
		ledger.ActivityDetails{MOID: &moID, Reason: cmd.Notes()},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
