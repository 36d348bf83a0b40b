package commands_test

import (
	"errors"
	"testing"
	"time"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/order"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func releasedMO(t *testing.T) *order.ManufacturingOrder {
	t.Helper()
	qty, err := kernel.NewQuantity(3000)
	require.NoError(t, err)
	mo, err := order.NewManufacturingOrder(
		kernel.NewUUID(), "MO-2025-0042", "SPR-0815", qty,
		order.ShiftI, order.PriorityHigh,
	)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, mo.Approve(kernel.NewUUID(), "ok", now))
	require.NoError(t, mo.AllocateRM(kernel.NewUUID(), "wire rod bay 3", now))
	return mo
}

func TestCreateBatchCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	mo := releasedMO(t)
	qty, err := kernel.NewQuantity(600)
	require.NoError(t, err)
	cmd, err := commands.NewCreateBatchCommand(
		kernel.NewUUID(), mo.ID(), "SPR-0815", qty, kernel.NewUUID(),
	)
	require.NoError(t, err)

	moRepo := new(MockMORepository)
	batchRepo := new(MockBatchRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MORepository").Return(moRepo).Once(),
		moRepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("NextSequence", mock.Anything, mo.ID()).Return(3, nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Add", mock.Anything, mock.MatchedBy(func(b *batch.Batch) bool {
			return b.BatchNumber() == "BATCH-MO-2025-0042-003" && b.Sequence() == 3
		})).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.AnythingOfType("*ledger.ProcessActivityLog")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateBatchCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	moRepo.AssertExpectations(t)
	batchRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateBatchCommandHandler_Handle_MONotReleased(t *testing.T) {
	ctx := t.Context()
	qty, err := kernel.NewQuantity(3000)
	require.NoError(t, err)
	mo, err := order.NewManufacturingOrder(
		kernel.NewUUID(), "MO-2025-0042", "SPR-0815", qty,
		order.ShiftI, order.PriorityHigh,
	)
	require.NoError(t, err)

	batchQty, err := kernel.NewQuantity(600)
	require.NoError(t, err)
	cmd, err := commands.NewCreateBatchCommand(
		kernel.NewUUID(), mo.ID(), "SPR-0815", batchQty, kernel.NewUUID(),
	)
	require.NoError(t, err)

	moRepo := new(MockMORepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MORepository").Return(moRepo).Once(),
		moRepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateBatchCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateBatchCommandHandler_Handle_ProductCodeMismatch(t *testing.T) {
	ctx := t.Context()
	mo := releasedMO(t)
	qty, err := kernel.NewQuantity(600)
	require.NoError(t, err)
	cmd, err := commands.NewCreateBatchCommand(
		kernel.NewUUID(), mo.ID(), "SPR-9999", qty, kernel.NewUUID(),
	)
	require.NoError(t, err)

	moRepo := new(MockMORepository)
	batchRepo := new(MockBatchRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MORepository").Return(moRepo).Once(),
		moRepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("NextSequence", mock.Anything, mo.ID()).Return(1, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateBatchCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, batch.ErrProductCodeMismatch)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateBatchCommandHandler_Handle_RetriesOnSequenceCollision(t *testing.T) {
	ctx := t.Context()
	mo := releasedMO(t)
	qty, err := kernel.NewQuantity(600)
	require.NoError(t, err)
	cmd, err := commands.NewCreateBatchCommand(
		kernel.NewUUID(), mo.ID(), "SPR-0815", qty, kernel.NewUUID(),
	)
	require.NoError(t, err)

	collision := errs.NewVersionIsInvalidError(
		"batch sequence", errors.New("duplicate key value violates unique constraint"),
	)

	firstMORepo := new(MockMORepository)
	firstBatchRepo := new(MockBatchRepository)
	firstUow := new(MockBatchUoW)
	mock.InOrder(
		firstUow.On("Begin", ctx).Return(nil).Once(),
		firstUow.On("MORepository").Return(firstMORepo).Once(),
		firstMORepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil).Once(),
		firstUow.On("BatchRepository").Return(firstBatchRepo).Once(),
		firstBatchRepo.On("NextSequence", mock.Anything, mo.ID()).Return(3, nil).Once(),
		firstUow.On("BatchRepository").Return(firstBatchRepo).Once(),
		firstBatchRepo.On("Add", mock.Anything, mock.Anything).Return(collision).Once(),
		firstUow.On("Rollback", ctx).Return(nil).Once(),
	)

	retryMORepo := new(MockMORepository)
	retryBatchRepo := new(MockBatchRepository)
	retryLedgerRepo := new(MockLedgerRepository)
	retryUow := new(MockBatchUoW)
	mock.InOrder(
		retryUow.On("Begin", ctx).Return(nil).Once(),
		retryUow.On("MORepository").Return(retryMORepo).Once(),
		retryMORepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil).Once(),
		retryUow.On("BatchRepository").Return(retryBatchRepo).Once(),
		retryBatchRepo.On("NextSequence", mock.Anything, mo.ID()).Return(4, nil).Once(),
		retryUow.On("BatchRepository").Return(retryBatchRepo).Once(),
		retryBatchRepo.On("Add", mock.Anything, mock.MatchedBy(func(b *batch.Batch) bool {
			return b.Sequence() == 4
		})).Return(nil).Once(),
		retryUow.On("LedgerRepository").Return(retryLedgerRepo).Once(),
		retryLedgerRepo.On("Append", mock.Anything, mock.AnythingOfType("*ledger.ProcessActivityLog")).Return(nil).Once(),
		retryUow.On("Commit", ctx).Return(nil).Once(),
		retryUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(firstUow).Once()
	factory.On("Create").Return(retryUow).Once()

	h := commands.NewCreateBatchCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	firstUow.AssertNotCalled(t, "Commit", mock.Anything)
	firstUow.AssertExpectations(t)
	retryUow.AssertExpectations(t)
	factory.AssertNumberOfCalls(t, "Create", 2)
}

func TestCreateBatchCommandHandler_Handle_SequenceError(t *testing.T) {
	ctx := t.Context()
	mo := releasedMO(t)
	qty, err := kernel.NewQuantity(600)
	require.NoError(t, err)
	cmd, err := commands.NewCreateBatchCommand(
		kernel.NewUUID(), mo.ID(), "SPR-0815", qty, kernel.NewUUID(),
	)
	require.NoError(t, err)

	moRepo := new(MockMORepository)
	batchRepo := new(MockBatchRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MORepository").Return(moRepo).Once(),
		moRepo.On("Get", mock.Anything, mo.ID()).Return(mo, nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("NextSequence", mock.Anything, mo.ID()).Return(0, errors.New("lock timeout")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateBatchCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
