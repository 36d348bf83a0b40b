package commands_test

import (
	"testing"
	"time"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/rework"
	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedFIRework(t *testing.T) *rework.FinalInspectionRework {
	t.Helper()
	now := time.Now().UTC()
	job, err := rework.NewFinalInspectionRework(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.MustQuantity(25), "pitting on flange face", 1, kernel.NewUUID(), now,
	)
	require.NoError(t, err)
	require.NoError(t, job.Start(now))
	require.NoError(t, job.Complete(now))
	return job
}

func TestReinspectCommandHandler_Handle_Passed(t *testing.T) {
	ctx := t.Context()
	job := completedFIRework(t)
	inspectorID := kernel.NewUUID()

	cmd, err := commands.NewReinspectCommand(
		job.ID(), kernel.NewUUID(), inspectorID, true, "")
	require.NoError(t, err)

	fiReworkRepo := new(MockFIReworkRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockReworkUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("FIReworkRepository").Return(fiReworkRepo).Once(),
		fiReworkRepo.On("Get", mock.Anything, job.ID()).Return(job, nil).Once(),
		uow.On("FIReworkRepository").Return(fiReworkRepo).Once(),
		fiReworkRepo.On("Update", mock.Anything, job).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.ProcessActivityLog) bool {
			return e.ActivityType() == ledger.ActivityFIPassed
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReworkUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Kind == ports.EventQualityCheckResult && e.Attributes["passed"] == "true"
	})).Once()

	h := commands.NewReinspectCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, job.ReinspectionPassed())
	assert.True(t, *job.ReinspectionPassed())
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestReinspectCommandHandler_Handle_FailedOpensNextCycle(t *testing.T) {
	ctx := t.Context()
	job := completedFIRework(t)
	inspectorID := kernel.NewUUID()
	nextCycleID := kernel.NewUUID()

	cmd, err := commands.NewReinspectCommand(
		job.ID(), nextCycleID, inspectorID, false, "pitting still visible")
	require.NoError(t, err)

	fiReworkRepo := new(MockFIReworkRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockReworkUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("FIReworkRepository").Return(fiReworkRepo).Once(),
		fiReworkRepo.On("Get", mock.Anything, job.ID()).Return(job, nil).Once(),
		uow.On("FIReworkRepository").Return(fiReworkRepo).Once(),
		fiReworkRepo.On("Update", mock.Anything, job).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.ProcessActivityLog) bool {
			return e.ActivityType() == ledger.ActivityFIReinspection
		})).Return(nil).Once(),
		uow.On("FIReworkRepository").Return(fiReworkRepo).Once(),
		fiReworkRepo.On("Add", mock.Anything, mock.MatchedBy(func(next *rework.FinalInspectionRework) bool {
			return next.ID().IsEqual(nextCycleID) &&
				next.ReworkCycleCount() == job.ReworkCycleCount()+1 &&
				next.Status() == rework.StatusPending
		})).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.ProcessActivityLog) bool {
			return e.ActivityType() == ledger.ActivityFIReworkAssigned
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReworkUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Kind == ports.EventQualityCheckResult && e.Attributes["passed"] == "false"
	})).Once()

	h := commands.NewReinspectCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestReinspectCommand_FailedVerdictRequiresRemarks(t *testing.T) {
	_, err := commands.NewReinspectCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), false, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
