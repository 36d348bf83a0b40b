package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/ports"
)

// AllocateRMCommandHandler records the raw-material allocation against an
// approved MO, unblocking batch creation.
type AllocateRMCommandHandler struct {
	uowFactory MOUoWFactory
	publisher  ports.EventPublisher
}

// NewAllocateRMCommandHandler creates a handler for RM allocation.
func NewAllocateRMCommandHandler(uowFactory MOUoWFactory, publisher ports.EventPublisher) AllocateRMCommandHandler {
	return AllocateRMCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the allocation command.
func (h *AllocateRMCommandHandler) Handle(ctx context.Context, cmd AllocateRMCommand) error {
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

	if err = mo.AllocateRM(cmd.AllocatorID(), cmd.Notes(), now); err != nil {
		return err
	}

	if err = uow.MORepository().Update(ctx, mo); err != nil {
		return err
	}

	moID := mo.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityRMAllocated, cmd.AllocatorID(), now,
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
		Kind:       ports.EventRMAllocated,
		Recipients: []ports.RecipientRole{ports.RoleProductionHead, ports.RoleSupervisor},
		OccurredAt: now,
		MOID:       &moID,
		Attributes: map[string]string{"mo_number": mo.MONumber()},
	})

	return nil
}
