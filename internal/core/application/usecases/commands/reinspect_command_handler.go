package commands

import (
	"context"
	"strconv"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/rework"
	"mestrace/internal/core/ports"
)

// ReinspectCommandHandler records the re-inspection verdict on a completed
// final-inspection rework cycle. A failed verdict leaves the inspected row
// untouched and opens a fresh cycle with an incremented count.
type ReinspectCommandHandler struct {
	uowFactory ReworkUoWFactory
	publisher  ports.EventPublisher
}

// NewReinspectCommandHandler creates a handler for re-inspection.
func NewReinspectCommandHandler(
	uowFactory ReworkUoWFactory,
	publisher ports.EventPublisher,
) ReinspectCommandHandler {
	return ReinspectCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the re-inspection command.
func (h *ReinspectCommandHandler) Handle(ctx context.Context, cmd ReinspectCommand) error { //nolint:funlen //transaction script
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

	fiRework, err := uow.FIReworkRepository().Get(ctx, cmd.FIReworkID())
	if err != nil {
		return err
	}

	if err = fiRework.RecordReinspection(cmd.ReinspectedBy(), cmd.Passed(), now); err != nil {
		return err
	}

	if err = uow.FIReworkRepository().Update(ctx, fiRework); err != nil {
		return err
	}

	batchID := fiRework.BatchID()
	executionID := fiRework.DefectiveExecutionID()

	activityType := ledger.ActivityFIPassed
	if !cmd.Passed() {
		activityType = ledger.ActivityFIReinspection
	}
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), activityType, cmd.ReinspectedBy(), now,
		ledger.ActivityDetails{
			BatchID:     &batchID,
			ExecutionID: &executionID,
			Remarks:     cmd.DefectRemarks(),
		},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	if !cmd.Passed() {
		var next *rework.FinalInspectionRework
		next, err = fiRework.NextCycle(cmd.NextCycleID(), cmd.ReinspectedBy(), cmd.DefectRemarks(), now)
		if err != nil {
			return err
		}

		if err = uow.FIReworkRepository().Add(ctx, next); err != nil {
			return err
		}

		quantity := next.Quantity()
		var assigned *ledger.ProcessActivityLog
		assigned, err = ledger.NewProcessActivityLog(
			kernel.NewUUID(), ledger.ActivityFIReworkAssigned, cmd.ReinspectedBy(), now,
			ledger.ActivityDetails{
				BatchID:        &batchID,
				ExecutionID:    &executionID,
				ReworkQuantity: &quantity,
				Reason:         cmd.DefectRemarks(),
			},
		)
		if err != nil {
			return err
		}
		if err = uow.LedgerRepository().Append(ctx, assigned); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:        ports.EventQualityCheckResult,
		Recipients:  []ports.RecipientRole{ports.RoleSupervisor, ports.RoleProductionHead},
		OccurredAt:  now,
		BatchID:     &batchID,
		ExecutionID: &executionID,
		Attributes: map[string]string{
			"passed": strconv.FormatBool(cmd.Passed()),
		},
	})

	return nil
}
