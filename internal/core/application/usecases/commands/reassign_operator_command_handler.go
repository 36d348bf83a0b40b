package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"
)

// ReassignOperatorCommandHandler closes the active assignment record and opens
// a replacement one in the same transaction, so the assignment history keeps
// both sides of the handover.
type ReassignOperatorCommandHandler struct {
	uowFactory AssignUoWFactory
	publisher  ports.EventPublisher
}

// NewReassignOperatorCommandHandler creates a handler for operator
// reassignment.
func NewReassignOperatorCommandHandler(
	uowFactory AssignUoWFactory,
	publisher ports.EventPublisher,
) ReassignOperatorCommandHandler {
	return ReassignOperatorCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reassignment command.
func (h *ReassignOperatorCommandHandler) Handle(ctx context.Context, cmd ReassignOperatorCommand) error {
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

	active, err := uow.AssignmentRepository().GetActiveByExecutionID(ctx, execution.ID())
	if err != nil {
		return err
	}
	if active == nil {
		return errs.NewInvalidStateTransitionError("reassign operator",
			"no active assignment", "operator assigned")
	}

	previousOperator := active.OperatorID()

	if err = active.MarkReassigned(cmd.Reason(), now); err != nil {
		return err
	}

	replacement, err := process.NewReassignment(
		cmd.NewAssignmentID(), execution.ID(), cmd.NewOperatorID(),
		cmd.ReassignedBy(), previousOperator, now,
	)
	if err != nil {
		return err
	}

	if err = execution.MirrorOperator(cmd.NewOperatorID()); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, active); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Add(ctx, replacement); err != nil {
		return err
	}

	if err = uow.ExecutionRepository().Update(ctx, execution); err != nil {
		return err
	}

	executionID := execution.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityOperatorReassigned, cmd.ReassignedBy(), now,
		ledger.ActivityDetails{ExecutionID: &executionID, Reason: cmd.Reason()},
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
		Kind:        ports.EventProcessReassigned,
		Recipients:  []ports.RecipientRole{ports.RoleOperator},
		OccurredAt:  now,
		ExecutionID: &executionID,
		Attributes: map[string]string{
			"process_code":      execution.ProcessCode(),
			"operator_id":       cmd.NewOperatorID().String(),
			"previous_operator": previousOperator.String(),
		},
	})

	return nil
}
