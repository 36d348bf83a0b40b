package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/rework"
	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"
)

// CreateFIReworkCommandHandler opens a final-inspection rework cycle. The
// defective quantity routes back to the supervisor of the step that caused
// the defect.
type CreateFIReworkCommandHandler struct {
	uowFactory ReworkUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateFIReworkCommandHandler creates a handler for final-inspection
// rework creation.
func NewCreateFIReworkCommandHandler(
	uowFactory ReworkUoWFactory,
	publisher ports.EventPublisher,
) CreateFIReworkCommandHandler {
	return CreateFIReworkCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the final-inspection rework command.
func (h *CreateFIReworkCommandHandler) Handle(ctx context.Context, cmd CreateFIReworkCommand) error {
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

	execution, err := uow.ExecutionRepository().Get(ctx, cmd.DefectiveExecutionID())
	if err != nil {
		return err
	}

	b, err := uow.BatchRepository().Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	// Final inspection is the terminal pipeline step, so the rework can only
	// be raised once the batch has completed its pass. The flagged step must
	// be upstream of it.
	if !execution.MOID().IsEqual(b.MOID()) {
		return errs.NewValueIsInvalidErrorWithCause("defectiveExecutionID",
			fmt.Errorf("execution %s does not belong to the batch's order", execution.ID()))
	}

	if b.Status() != batch.Completed {
		return errs.NewInvalidStateTransitionError(
			"create final inspection rework", b.Status().String(), batch.Completed.String())
	}

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

	if execution.SequenceOrder() >= maxSequence {
		return errs.NewValueIsInvalidErrorWithCause("defectiveExecutionID",
			fmt.Errorf("final inspection itself cannot be flagged as the defective step"))
	}

	supervisor := execution.AssignedSupervisor()
	if supervisor == nil {
		return errs.NewValueIsRequiredError("defective process supervisor")
	}

	cycleCount := 1
	latest, err := uow.FIReworkRepository().GetLatestByBatchID(ctx, cmd.BatchID())
	if err != nil {
		return err
	}
	if latest != nil {
		cycleCount = latest.ReworkCycleCount() + 1
	}

	fiRework, err := rework.NewFinalInspectionRework(
		cmd.FIReworkID(), cmd.BatchID(), execution.ID(), *supervisor,
		cmd.Quantity(), cmd.DefectDescription(), cycleCount, cmd.CreatedBy(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.FIReworkRepository().Add(ctx, fiRework); err != nil {
		return err
	}

	batchID := cmd.BatchID()
	executionID := execution.ID()
	quantity := cmd.Quantity()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityFIReworkAssigned, cmd.CreatedBy(), now,
		ledger.ActivityDetails{
			BatchID:        &batchID,
			ExecutionID:    &executionID,
			ReworkQuantity: &quantity,
			Reason:         cmd.DefectDescription(),
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
		Kind:        ports.EventQualityCheckResult,
		Recipients:  []ports.RecipientRole{ports.RoleSupervisor},
		OccurredAt:  now,
		BatchID:     &batchID,
		ExecutionID: &executionID,
		Attributes: map[string]string{
			"process_code": execution.ProcessCode(),
			"quantity":     quantity.String(),
			"cycle":        strconv.Itoa(cycleCount),
		},
	})

	return nil
}
