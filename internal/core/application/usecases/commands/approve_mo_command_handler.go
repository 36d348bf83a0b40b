package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/ports"
)

// ApproveMOCommandHandler moves a pending MO to manager-approved. Out-of-order
// approvals are rejected by the workflow itself; the handler only loads,
// delegates and persists. After commit the RM store is hinted that an
// allocation is now required.
type ApproveMOCommandHandler struct {
	uowFactory MOUoWFactory
	publisher  ports.EventPublisher
}

// NewApproveMOCommandHandler creates a handler for MO approval.
func NewApproveMOCommandHandler(uowFactory MOUoWFactory, publisher ports.EventPublisher) ApproveMOCommandHandler {
	return ApproveMOCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the approval command.
func (h *ApproveMOCommandHandler) Handle(ctx context.Context, cmd ApproveMOCommand) error {
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

	if err = mo.Approve(cmd.ApproverID(), cmd.Notes(), now); err != nil {
		return err
	}

	if err = uow.MORepository().Update(ctx, mo); err != nil {
		return err
	}

	moID := mo.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityMOApproved, cmd.ApproverID(), now,
		ledger.ActivityDetails{MOID: &moID, Remarks: cmd.Notes()},
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
		Kind:       ports.EventMOApproved,
		Recipients: []ports.RecipientRole{ports.RoleRMStore, ports.RoleProductionHead},
		OccurredAt: now,
		MOID:       &moID,
		Attributes: map[string]string{
			"mo_number": mo.MONumber(),
			"next_step": "rm_allocation",
		},
	})

	return nil
}
