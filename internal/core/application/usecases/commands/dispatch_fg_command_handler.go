package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
)

// DispatchFGCommandHandler approves a quality-passed verification for
// dispatch and stamps the dispatch in one step. The two transitions stay
// separate on the aggregate, so a verification that is not passed cannot be
// pushed straight out of the store.
type DispatchFGCommandHandler struct {
	uowFactory FlowUoWFactory
}

// NewDispatchFGCommandHandler creates a handler for finished-goods dispatch.
func NewDispatchFGCommandHandler(uowFactory FlowUoWFactory) DispatchFGCommandHandler {
	return DispatchFGCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch command.
func (h *DispatchFGCommandHandler) Handle(ctx context.Context, cmd DispatchFGCommand) error {
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

	if err = verification.ApproveForDispatch(); err != nil {
		return err
	}

	if err = verification.Dispatch(cmd.DispatchedBy(), now); err != nil {
		return err
	}

	if err = uow.FGVerificationRepository().Update(ctx, verification); err != nil {
		return err
	}

	batchID := verification.BatchID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityFGDispatched, cmd.DispatchedBy(), now,
		ledger.ActivityDetails{BatchID: &batchID},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
