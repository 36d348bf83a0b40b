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

// AssignOperatorCommandHandler opens the first assignment record for a
// pipeline step and mirrors the operator onto it. A step that already has an
// open assignment must go through reassignment instead.
type AssignOperatorCommandHandler struct {
	uowFactory AssignUoWFactory
	publisher  ports.EventPublisher
}

// NewAssignOperatorCommandHandler creates a handler for operator assignment.
func NewAssignOperatorCommandHandler(
	uowFactory AssignUoWFactory,
	publisher ports.EventPublisher,
) AssignOperatorCommandHandler {
	return AssignOperatorCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the assignment command.
func (h *AssignOperatorCommandHandler) Handle(ctx context.Context, cmd AssignOperatorCommand) error {
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
	if active != nil {
		return errs.NewInvalidStateTransitionError("assign operator",
			"operator already assigned", "no active assignment")
	}

	assignment, err := process.NewProcessAssignment(
		cmd.AssignmentID(), execution.ID(), cmd.OperatorID(), cmd.AssignedBy(), now,
	)
	if err != nil {
		return err
	}

	if err = execution.MirrorOperator(cmd.OperatorID()); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Add(ctx, assignment); err != nil {
		return err
	}

	if err = uow.ExecutionRepository().Update(ctx, execution); err != nil {
		return err
	}

	executionID := execution.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityOperatorAssigned, cmd.AssignedBy(), now,
		ledger.ActivityDetails{ExecutionID: &executionID},
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
		Kind:        ports.EventProcessAssigned,
		Recipients:  []ports.RecipientRole{ports.RoleOperator},
		OccurredAt:  now,
		ExecutionID: &executionID,
		Attributes: map[string]string{
			"process_code": execution.ProcessCode(),
			"operator_id":  cmd.OperatorID().String(),
		},
	})

	return nil
}
