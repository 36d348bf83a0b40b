package commands_test

import (
	"testing"
	"time"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func receivedAllocation(t *testing.T) *process.BatchAllocation {
	t.Helper()
	now := time.Now().UTC()
	al, err := process.NewBatchAllocation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(), nil, now,
	)
	require.NoError(t, err)
	require.NoError(t, al.Receive(kernel.NewUUID(), now))
	return al
}

func TestStartProcessingCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	al := receivedAllocation(t)

	cmd, err := commands.NewStartProcessingCommand(al.ID(), kernel.NewUUID())
	require.NoError(t, err)

	allocRepo := new(MockAllocationRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockFlowUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AllocationRepository").Return(allocRepo).Once(),
		allocRepo.On("Get", mock.Anything, al.ID()).Return(al, nil).Once(),
		uow.On("AllocationRepository").Return(allocRepo).Once(),
		allocRepo.On("Update", mock.Anything, mock.MatchedBy(func(got *process.BatchAllocation) bool {
			return got.Status() == process.AllocationInProcess
		})).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.AnythingOfType("*ledger.ProcessActivityLog")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFlowUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartProcessingCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	allocRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartProcessingCommandHandler_Handle_NotReceived(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	al, err := process.NewBatchAllocation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(), nil, now,
	)
	require.NoError(t, err)

	cmd, err := commands.NewStartProcessingCommand(al.ID(), kernel.NewUUID())
	require.NoError(t, err)

	allocRepo := new(MockAllocationRepository)
	uow := new(MockFlowUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AllocationRepository").Return(allocRepo).Once(),
		allocRepo.On("Get", mock.Anything, al.ID()).Return(al, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFlowUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartProcessingCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
