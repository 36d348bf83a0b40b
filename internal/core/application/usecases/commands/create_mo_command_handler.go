package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/order"
	"mestrace/internal/core/ports"
)

// CreateMOCommandHandler handles the business logic for MO registration.
// Creates the order together with its approval workflow and notifies managers
// that an approval is waiting.
type CreateMOCommandHandler struct {
	uowFactory MOUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateMOCommandHandler creates a handler for MO registration.
func NewCreateMOCommandHandler(uowFactory MOUoWFactory, publisher ports.EventPublisher) CreateMOCommandHandler {
	return CreateMOCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the MO registration command. The order and its ledger
// entry commit atomically; the notification goes out only after the commit.
func (h *CreateMOCommandHandler) Handle(ctx context.Context, cmd CreateMOCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	mo, err := order.NewManufacturingOrder(
		cmd.MOID(), cmd.MONumber(), cmd.ProductCode(),
		cmd.TargetQuantity(), cmd.Shift(), cmd.Priority(),
	)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	moID := mo.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityMOCreated, cmd.CreatedBy(), now,
		ledger.ActivityDetails{MOID: &moID},
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

	if err = uow.MORepository().Add(ctx, mo); err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventMOCreated,
		Recipients: []ports.RecipientRole{ports.RoleManager},
		OccurredAt: now,
		MOID:       &moID,
		Attributes: map[string]string{"mo_number": mo.MONumber()},
	})

	return nil
}
