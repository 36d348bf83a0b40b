package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/ports"
)

// CompleteProcessCommandHandler closes an allocation's pass through its step.
// Completing the terminal step of the pipeline also closes the batch and
// queues it for finished-goods verification.
type CompleteProcessCommandHandler struct {
	uowFactory FlowUoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteProcessCommandHandler creates a handler for process completion.
func NewCompleteProcessCommandHandler(
	uowFactory FlowUoWFactory,
	publisher ports.EventPublisher,
) CompleteProcessCommandHandler {
	return CompleteProcessCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the completion command.
func (h *CompleteProcessCommandHandler) Handle(ctx context.Context, cmd CompleteProcessCommand) error { //nolint:funlen //transaction script
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

	allocation, err := uow.AllocationRepository().Get(ctx, cmd.AllocationID())
	if err != nil {
		return err
	}

	if err = allocation.Complete(); err != nil {
		return err
	}

	b, err := uow.BatchRepository().Get(ctx, allocation.BatchID())
	if err != nil {
		return err
	}

	execution, err := uow.ExecutionRepository().Get(ctx, allocation.ExecutionID())
	if err != nil {
		return err
	}

	// The execution itself stays in progress: other batches of the MO may
	// still pass through this step. Only the batch's allocation closes.
	executions, err := uow.ExecutionRepository().GetAllByMOID(ctx, b.MOID())
	if err != nil {
		return err
	}

	maxSequence := 0
	for _, e := range executions {
		if e.SequenceOrder() > maxSequence {
			maxSequence = e.SequenceOrder()
		}
	}

	var fgVerification *batch.FinishedGoodsVerification
	terminal := execution.SequenceOrder() == maxSequence
	if terminal {
		if err = b.Complete(now); err != nil {
			return err
		}
		fgVerification, err = batch.NewFinishedGoodsVerification(kernel.NewUUID(), b.ID())
		if err != nil {
			return err
		}
	}

	if err = uow.AllocationRepository().Update(ctx, allocation); err != nil {
		return err
	}

	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return err
	}

	if fgVerification != nil {
		if err = uow.FGVerificationRepository().Add(ctx, fgVerification); err != nil {
			return err
		}
	}

	batchID := b.ID()
	executionID := execution.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityProcessCompleted, cmd.CompletedBy(), now,
		ledger.ActivityDetails{BatchID: &batchID, ExecutionID: &executionID},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	if terminal {
		var required *ledger.ProcessActivityLog
		required, err = ledger.NewProcessActivityLog(
			kernel.NewUUID(), ledger.ActivityFGVerificationRequired, cmd.CompletedBy(), now,
			ledger.ActivityDetails{BatchID: &batchID},
		)
		if err != nil {
			return err
		}
		if err = uow.LedgerRepository().Append(ctx, required); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:        ports.EventProcessCompleted,
		Recipients:  []ports.RecipientRole{ports.RoleSupervisor},
		OccurredAt:  now,
		BatchID:     &batchID,
		ExecutionID: &executionID,
		Attributes: map[string]string{
			"batch_number": b.BatchNumber(),
			"process_code": execution.ProcessCode(),
		},
	})

	if terminal {
		h.publisher.Publish(ctx, ports.Event{
			Kind:       ports.EventFGVerificationRequired,
			Recipients: []ports.RecipientRole{ports.RoleQualityInspector},
			OccurredAt: now,
			BatchID:    &batchID,
			Attributes: map[string]string{
				"batch_number": b.BatchNumber(),
			},
		})
	}

	return nil
}
