package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"
)

// AllocateBatchCommandHandler binds a batch to a pipeline step and opens the
// transit record in the same transaction. A batch can hold at most one open
// allocation at a time.
type AllocateBatchCommandHandler struct {
	uowFactory FlowUoWFactory
	inventory  ports.InventoryLookup
	publisher  ports.EventPublisher
}

// NewAllocateBatchCommandHandler creates a handler for batch allocation.
func NewAllocateBatchCommandHandler(
	uowFactory FlowUoWFactory,
	inventory ports.InventoryLookup,
	publisher ports.EventPublisher,
) AllocateBatchCommandHandler {
	return AllocateBatchCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		publisher:  publisher,
	}
}

// Handle processes the allocation command.
func (h *AllocateBatchCommandHandler) Handle(ctx context.Context, cmd AllocateBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// Inventory is an adjacent system; the check runs before any lock is
	// taken.
	if heatNumbers := cmd.HeatNumbers(); len(heatNumbers) > 0 {
		available, err := h.inventory.HeatNumbersAvailable(ctx, heatNumbers)
		if err != nil {
			return err
		}
		if !available {
			return errs.NewValueIsInvalidError("heatNumbers")
		}
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BatchRepository().Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	open, err := uow.AllocationRepository().GetOpenByBatchID(ctx, b.ID())
	if err != nil {
		return err
	}
	if open != nil {
		return errs.NewInvalidStateTransitionError("allocate batch",
			"open allocation exists", "no open allocation")
	}

	execution, err := uow.ExecutionRepository().Get(ctx, cmd.ExecutionID())
	if err != nil {
		return err
	}

	allocation, err := process.NewBatchAllocation(
		cmd.AllocationID(), b.ID(), execution.ID(), cmd.OperatorID(),
		cmd.AllocatedBy(), cmd.HeatNumbers(), now,
	)
	if err != nil {
		return err
	}

	if err = allocation.MarkInTransit(); err != nil {
		return err
	}

	receiptLog, err := handover.NewBatchReceiptLog(
		cmd.ReceiptLogID(), b.ID(), allocation.ID(), cmd.FromExecutionID(),
		execution.ID(), cmd.AllocatedBy(), cmd.HandoverQuantity(), now,
	)
	if err != nil {
		return err
	}

	// The batch status tracks the raw-material handover only. Later handovers
	// between steps leave it in processing.
	if cmd.FromExecutionID() == nil {
		if err = b.MarkRMAllocated(); err != nil {
			return err
		}
	}

	if err = uow.AllocationRepository().Add(ctx, allocation); err != nil {
		return err
	}

	if err = uow.ReceiptLogRepository().Add(ctx, receiptLog); err != nil {
		return err
	}

	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return err
	}

	batchID := b.ID()
	executionID := execution.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityBatchAllocated, cmd.AllocatedBy(), now,
		ledger.ActivityDetails{
			BatchID:     &batchID,
			ExecutionID: &executionID,
			Remarks:     "handed over " + cmd.HandoverQuantity().String(),
		},
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
		Kind:        ports.EventBatchAllocated,
		Recipients:  []ports.RecipientRole{ports.RoleOperator, ports.RoleSupervisor},
		OccurredAt:  now,
		BatchID:     &batchID,
		ExecutionID: &executionID,
		Attributes: map[string]string{
			"batch_number": b.BatchNumber(),
			"process_code": execution.ProcessCode(),
		},
	})

	return nil
}
