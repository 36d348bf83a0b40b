package commands_test

import (
	"testing"
	"time"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/order"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pipelineReadyMO(t *testing.T) *order.ManufacturingOrder {
	t.Helper()
	mo, err := order.NewManufacturingOrder(
		kernel.NewUUID(), "MO-2025-0042", "SPR-0815",
		kernel.MustQuantity(1200), order.ShiftI, order.PriorityHigh)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, mo.Approve(kernel.NewUUID(), "capacity confirmed", now))
	require.NoError(t, mo.AllocateRM(kernel.NewUUID(), "heat 7731", now))
	return mo
}

func TestCreatePipelineCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	mo := pipelineReadyMO(t)
	createdBy := kernel.NewUUID()

	cmd, err := commands.NewCreatePipelineCommand(mo.ID(), createdBy)
	require.NoError(t, err)

	catalog := new(MockProcessCatalog)
	catalog.On("Pipeline", mock.Anything, "SPR-0815").Return([]ports.ProcessDefinition{
		{Code: "CNC-01", Name: "CNC turning", SequenceOrder: 1},
		{Code: "GRD-01", Name: "Grinding", SequenceOrder: 2},
		{Code: "FI-01", Name: "Final inspection", SequenceOrder: 3},
	}, nil).Once()

	moRepo := new(MockMORepository)
	executionRepo := new(MockExecutionRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockPipelineUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MORepository").Return(moRepo).Once(),
		moRepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil).Once(),
		uow.On("ExecutionRepository").Return(executionRepo).Once(),
		executionRepo.On("GetAllByMOID", mock.Anything, mo.ID()).Return(nil, nil).Once(),
	)
	uow.On("ExecutionRepository").Return(executionRepo).Times(3)
	executionRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *process.ProcessExecution) bool {
		return e.MOID().IsEqual(mo.ID()) && e.Status() == process.ExecutionPending
	})).Return(nil).Times(3)
	uow.On("LedgerRepository").Return(ledgerRepo).Once()
	ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.ProcessActivityLog) bool {
		return e.ActivityType() == ledger.ActivityPipelineCreated
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPipelineUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePipelineCommandHandler(factory, catalog)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	executionRepo.AssertNumberOfCalls(t, "Add", 3)
}

func TestCreatePipelineCommandHandler_Handle_PipelineExists(t *testing.T) {
	ctx := t.Context()
	mo := pipelineReadyMO(t)

	existing, err := process.NewProcessExecution(
		kernel.NewUUID(), mo.ID(), "CNC-01", "CNC turning", 1)
	require.NoError(t, err)

	cmd, err := commands.NewCreatePipelineCommand(mo.ID(), kernel.NewUUID())
	require.NoError(t, err)

	moRepo := new(MockMORepository)
	moRepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil)
	executionRepo := new(MockExecutionRepository)
	executionRepo.On("GetAllByMOID", mock.Anything, mo.ID()).
		Return([]*process.ProcessExecution{existing}, nil)

	uow := new(MockPipelineUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("MORepository").Return(moRepo)
	uow.On("ExecutionRepository").Return(executionRepo)

	factory := new(MockPipelineUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePipelineCommandHandler(factory, new(MockProcessCatalog))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreatePipelineCommandHandler_Handle_MONotReleased(t *testing.T) {
	ctx := t.Context()
	mo, err := order.NewManufacturingOrder(
		kernel.NewUUID(), "MO-2025-0043", "SPR-0815",
		kernel.MustQuantity(600), order.ShiftII, order.PriorityMedium)
	require.NoError(t, err)

	cmd, err := commands.NewCreatePipelineCommand(mo.ID(), kernel.NewUUID())
	require.NoError(t, err)

	moRepo := new(MockMORepository)
	moRepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil)

	uow := new(MockPipelineUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("MORepository").Return(moRepo)

	factory := new(MockPipelineUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePipelineCommandHandler(factory, new(MockProcessCatalog))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreatePipelineCommandHandler_Handle_UnroutedProduct(t *testing.T) {
	ctx := t.Context()
	mo := pipelineReadyMO(t)

	cmd, err := commands.NewCreatePipelineCommand(mo.ID(), kernel.NewUUID())
	require.NoError(t, err)

	catalog := new(MockProcessCatalog)
	catalog.On("Pipeline", mock.Anything, "SPR-0815").Return([]ports.ProcessDefinition{}, nil)

	moRepo := new(MockMORepository)
	moRepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil)
	executionRepo := new(MockExecutionRepository)
	executionRepo.On("GetAllByMOID", mock.Anything, mo.ID()).Return(nil, nil)

	uow := new(MockPipelineUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("MORepository").Return(moRepo)
	uow.On("ExecutionRepository").Return(executionRepo)

	factory := new(MockPipelineUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePipelineCommandHandler(factory, catalog)
	err = h.Handle(ctx, cmd)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
