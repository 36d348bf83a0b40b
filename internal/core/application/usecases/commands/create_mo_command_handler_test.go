package commands_test

import (
	"errors"
	"testing"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/order"
	"mestrace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createMOCommand(t *testing.T) commands.CreateMOCommand {
	t.Helper()
	qty, err := kernel.NewQuantity(3000)
	require.NoError(t, err)
	cmd, err := commands.NewCreateMOCommand(
		kernel.NewUUID(), "MO-2025-0042", "SPR-0815", qty,
		order.ShiftI, order.PriorityHigh, kernel.NewUUID(),
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateMOCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := createMOCommand(t)

	moRepo := new(MockMORepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockMOUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MORepository").Return(moRepo).Once(),
		moRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.ManufacturingOrder")).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.AnythingOfType("*ledger.ProcessActivityLog")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMOUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Kind == ports.EventMOCreated &&
			len(e.Recipients) == 1 && e.Recipients[0] == ports.RoleManager &&
			e.Attributes["mo_number"] == "MO-2025-0042"
	})).Once()

	h := commands.NewCreateMOCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	moRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateMOCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockMOUoWFactory)
	publisher := new(MockEventPublisher)

	h := commands.NewCreateMOCommandHandler(factory, publisher)
	err := h.Handle(ctx, commands.CreateMOCommand{})
	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateMOCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := createMOCommand(t)

	moRepo := new(MockMORepository)
	uow := new(MockMOUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MORepository").Return(moRepo).Once(),
		moRepo.On("Add", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMOUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewCreateMOCommandHandler(factory, publisher)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateMOCommandHandler_Handle_LedgerAppendErrorFailsCommand(t *testing.T) {
	ctx := t.Context()
	cmd := createMOCommand(t)

	moRepo := new(MockMORepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockMOUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MORepository").Return(moRepo).Once(),
		moRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(errors.New("append failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMOUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewCreateMOCommandHandler(factory, publisher)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
