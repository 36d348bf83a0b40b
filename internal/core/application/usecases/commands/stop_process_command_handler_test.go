package commands_test

import (
	"testing"
	"time"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func runningExecution(t *testing.T) *process.ProcessExecution {
	t.Helper()
	execution, err := process.NewProcessExecution(
		kernel.NewUUID(), kernel.NewUUID(), "CNC-01", "CNC turning", 2)
	require.NoError(t, err)
	require.NoError(t, execution.Start(time.Now().UTC()))
	return execution
}

func TestStopProcessCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	execution := runningExecution(t)
	stoppedBy := kernel.NewUUID()

	cmd, err := commands.NewStopProcessCommand(
		kernel.NewUUID(), execution.ID(),
		downtime.ReasonMachineBreakdown, "spindle jammed", stoppedBy)
	require.NoError(t, err)

	executionRepo := new(MockExecutionRepository)
	stopRepo := new(MockStopRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockDowntimeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ExecutionRepository").Return(executionRepo).Once(),
		executionRepo.On("Get", mock.Anything, execution.ID()).Return(execution, nil).Once(),
		uow.On("StopRepository").Return(stopRepo).Once(),
		stopRepo.On("GetOpenByExecutionID", mock.Anything, execution.ID()).Return(nil, nil).Once(),
		uow.On("StopRepository").Return(stopRepo).Once(),
		stopRepo.On("Add", mock.Anything, mock.MatchedBy(func(s *downtime.ProcessStop) bool {
			return s.Reason() == downtime.ReasonMachineBreakdown && !s.IsResolved()
		})).Return(nil).Once(),
		uow.On("ExecutionRepository").Return(executionRepo).Once(),
		executionRepo.On("Update", mock.Anything, execution).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.ProcessActivityLog) bool {
			return e.ActivityType() == ledger.ActivityProcessStopped
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDowntimeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStopProcessCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, process.ExecutionOnHold, execution.Status())
	uow.AssertExpectations(t)
}

func TestStopProcessCommandHandler_Handle_OpenStopExists(t *testing.T) {
	ctx := t.Context()
	execution := runningExecution(t)

	open, err := downtime.NewProcessStop(
		kernel.NewUUID(), execution.ID(),
		downtime.ReasonPowerFailure, "", kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)

	cmd, err := commands.NewStopProcessCommand(
		kernel.NewUUID(), execution.ID(),
		downtime.ReasonMaterialShortage, "", kernel.NewUUID())
	require.NoError(t, err)

	executionRepo := new(MockExecutionRepository)
	executionRepo.On("Get", mock.Anything, execution.ID()).Return(execution, nil)
	stopRepo := new(MockStopRepository)
	stopRepo.On("GetOpenByExecutionID", mock.Anything, execution.ID()).Return(open, nil)

	uow := new(MockDowntimeUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("ExecutionRepository").Return(executionRepo)
	uow.On("StopRepository").Return(stopRepo)

	factory := new(MockDowntimeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStopProcessCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestResumeProcessCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	execution := runningExecution(t)
	require.NoError(t, execution.Hold())

	stop, err := downtime.NewProcessStop(
		kernel.NewUUID(), execution.ID(),
		downtime.ReasonPlannedMaintenance, "tool change", kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)

	resumedBy := kernel.NewUUID()
	cmd, err := commands.NewResumeProcessCommand(stop.ID(), resumedBy)
	require.NoError(t, err)

	executionRepo := new(MockExecutionRepository)
	stopRepo := new(MockStopRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockDowntimeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StopRepository").Return(stopRepo).Once(),
		stopRepo.On("Get", mock.Anything, stop.ID()).Return(stop, nil).Once(),
		uow.On("ExecutionRepository").Return(executionRepo).Once(),
		executionRepo.On("Get", mock.Anything, execution.ID()).Return(execution, nil).Once(),
		uow.On("ExecutionRepository").Return(executionRepo).Once(),
		executionRepo.On("Update", mock.Anything, execution).Return(nil).Once(),
		uow.On("StopRepository").Return(stopRepo).Once(),
		stopRepo.On("Update", mock.Anything, stop).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.ProcessActivityLog) bool {
			return e.ActivityType() == ledger.ActivityProcessResumed
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDowntimeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResumeProcessCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, stop.IsResolved())
	require.NotNil(t, stop.DowntimeMinutes())
	assert.Equal(t, process.ExecutionInProgress, execution.Status())
	uow.AssertExpectations(t)
}

func TestResumeProcessCommandHandler_Handle_AlreadyResolved(t *testing.T) {
	ctx := t.Context()
	execution := runningExecution(t)

	stop, err := downtime.NewProcessStop(
		kernel.NewUUID(), execution.ID(),
		downtime.ReasonOther, "", kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, stop.Resume(kernel.NewUUID(), time.Now().UTC()))

	cmd, err := commands.NewResumeProcessCommand(stop.ID(), kernel.NewUUID())
	require.NoError(t, err)

	stopRepo := new(MockStopRepository)
	stopRepo.On("Get", mock.Anything, stop.ID()).Return(stop, nil)

	uow := new(MockDowntimeUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("StopRepository").Return(stopRepo)

	factory := new(MockDowntimeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResumeProcessCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
