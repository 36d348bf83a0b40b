package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/order"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"
)

// ReceiveBatchCommandHandler confirms that an allocated batch physically
// arrived at its destination step. The first receipt of an MO's material also
// releases the MO to production.
type ReceiveBatchCommandHandler struct {
	uowFactory FlowUoWFactory
	publisher  ports.EventPublisher
}

// NewReceiveBatchCommandHandler creates a handler for batch receipt.
func NewReceiveBatchCommandHandler(
	uowFactory FlowUoWFactory,
	publisher ports.EventPublisher,
) ReceiveBatchCommandHandler {
	return ReceiveBatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the receipt command.
func (h *ReceiveBatchCommandHandler) Handle(ctx context.Context, cmd ReceiveBatchCommand) error {
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

	if err = allocation.Receive(cmd.ReceivedBy(), now); err != nil {
		return err
	}

	receiptLog, err := uow.ReceiptLogRepository().GetOpenByAllocationID(ctx, allocation.ID())
	if err != nil {
		return err
	}
	if receiptLog == nil {
		return errs.NewObjectNotFoundError("allocationID", allocation.ID())
	}

	b, err := uow.BatchRepository().Get(ctx, allocation.BatchID())
	if err != nil {
		return err
	}

	// The first receipt moves the batch into processing; receipts at later
	// steps find it there already.
	batchStarted := false
	if b.Status() == batch.RMAllocated {
		if err = b.Start(receiptLog.HandoverQuantity(), now); err != nil {
			return err
		}
		batchStarted = true
	}

	execution, err := uow.ExecutionRepository().Get(ctx, allocation.ExecutionID())
	if err != nil {
		return err
	}

	if execution.Status() == process.ExecutionPending {
		if err = execution.Start(now); err != nil {
			return err
		}
	}

	mo, err := uow.MORepository().Get(ctx, b.MOID())
	if err != nil {
		return err
	}

	moReleased := false
	if mo.Workflow().Status() == order.RMAllocated {
		if err = mo.ReleaseToProduction(now); err != nil {
			return err
		}
		moReleased = true
	}

	if err = uow.AllocationRepository().Update(ctx, allocation); err != nil {
		return err
	}

	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return err
	}

	if err = uow.ExecutionRepository().Update(ctx, execution); err != nil {
		return err
	}

	if moReleased {
		if err = uow.MORepository().Update(ctx, mo); err != nil {
			return err
		}
	}

	batchID := b.ID()
	executionID := execution.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityBatchReceived, cmd.ReceivedBy(), now,
		ledger.ActivityDetails{BatchID: &batchID, ExecutionID: &executionID},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	if batchStarted {
		var started *ledger.ProcessActivityLog
		started, err = ledger.NewProcessActivityLog(
			kernel.NewUUID(), ledger.ActivityBatchStarted, cmd.ReceivedBy(), now,
			ledger.ActivityDetails{BatchID: &batchID, ExecutionID: &executionID},
		)
		if err != nil {
			return err
		}
		if err = uow.LedgerRepository().Append(ctx, started); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:        ports.EventBatchReceived,
		Recipients:  []ports.RecipientRole{ports.RoleSupervisor},
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
