package commands_test

import (
	"testing"
	"time"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type receiptFixture struct {
	allocation *process.BatchAllocation
	receiptLog *handover.BatchReceiptLog
	batch      *batch.Batch
}

func receivedBatchFixture(t *testing.T) receiptFixture {
	t.Helper()
	now := time.Now().UTC()

	b, err := batch.NewBatch(
		kernel.NewUUID(), kernel.NewUUID(), "MO-2025-0042", "SPR-0815",
		"SPR-0815", 1, kernel.MustQuantity(600), kernel.NewUUID(),
	)
	require.NoError(t, err)
	require.NoError(t, b.MarkRMAllocated())

	al, err := process.NewBatchAllocation(
		kernel.NewUUID(), b.ID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), nil, now,
	)
	require.NoError(t, err)
	require.NoError(t, al.MarkInTransit())
	require.NoError(t, al.Receive(kernel.NewUUID(), now))

	l, err := handover.NewBatchReceiptLog(
		kernel.NewUUID(), b.ID(), al.ID(), nil, al.ExecutionID(),
		kernel.NewUUID(), kernel.MustQuantity(600), now,
	)
	require.NoError(t, err)

	require.NoError(t, b.Start(kernel.MustQuantity(600), now))

	return receiptFixture{allocation: al, receiptLog: l, batch: b}
}

func TestVerifyReceiptCommandHandler_Handle_Verified(t *testing.T) {
	ctx := t.Context()
	fx := receivedBatchFixture(t)

	cmd, err := commands.NewVerifyReceiptCommand(
		kernel.NewUUID(), fx.allocation.ID(), kernel.NewUUID(),
		handover.ActionVerified, handover.ReasonNone, nil, "",
	)
	require.NoError(t, err)

	allocRepo := new(MockAllocationRepository)
	logRepo := new(MockReceiptLogRepository)
	batchRepo := new(MockBatchRepository)
	verRepo := new(MockVerificationRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockFlowUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AllocationRepository").Return(allocRepo).Once(),
		allocRepo.On("Get", mock.Anything, fx.allocation.ID()).Return(fx.allocation, nil).Once(),
		uow.On("ReceiptLogRepository").Return(logRepo).Once(),
		logRepo.On("GetOpenByAllocationID", mock.Anything, fx.allocation.ID()).Return(fx.receiptLog, nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", mock.Anything, fx.batch.ID()).Return(fx.batch, nil).Once(),
		uow.On("VerificationRepository").Return(verRepo).Once(),
		verRepo.On("Add", mock.Anything, mock.MatchedBy(func(v *handover.BatchReceiptVerification) bool {
			return v.Action() == handover.ActionVerified && !v.IsOnHold()
		})).Return(nil).Once(),
		uow.On("ReceiptLogRepository").Return(logRepo).Once(),
		logRepo.On("Update", mock.Anything, fx.receiptLog).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.AnythingOfType("*ledger.ProcessActivityLog")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFlowUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewVerifyReceiptCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, fx.receiptLog.IsVerified())
	assert.False(t, fx.receiptLog.HasIssues())
	assert.Equal(t, batch.InProcess, fx.batch.Status())
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestVerifyReceiptCommandHandler_Handle_ReportedLowQty(t *testing.T) {
	ctx := t.Context()
	fx := receivedBatchFixture(t)

	actual := kernel.MustQuantity(540)
	cmd, err := commands.NewVerifyReceiptCommand(
		kernel.NewUUID(), fx.allocation.ID(), kernel.NewUUID(),
		handover.ActionReported, handover.ReasonLowQty, &actual, "short by 60 kg",
	)
	require.NoError(t, err)

	allocRepo := new(MockAllocationRepository)
	logRepo := new(MockReceiptLogRepository)
	batchRepo := new(MockBatchRepository)
	verRepo := new(MockVerificationRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockFlowUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AllocationRepository").Return(allocRepo).Once(),
		allocRepo.On("Get", mock.Anything, fx.allocation.ID()).Return(fx.allocation, nil).Once(),
		uow.On("ReceiptLogRepository").Return(logRepo).Once(),
		logRepo.On("GetOpenByAllocationID", mock.Anything, fx.allocation.ID()).Return(fx.receiptLog, nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", mock.Anything, fx.batch.ID()).Return(fx.batch, nil).Once(),
		uow.On("VerificationRepository").Return(verRepo).Once(),
		verRepo.On("Add", mock.Anything, mock.MatchedBy(func(v *handover.BatchReceiptVerification) bool {
			return v.Action() == handover.ActionReported && v.IsOnHold() &&
				v.ReportReason() == handover.ReasonLowQty
		})).Return(nil).Once(),
		uow.On("ReceiptLogRepository").Return(logRepo).Once(),
		logRepo.On("Update", mock.Anything, fx.receiptLog).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Update", mock.Anything, fx.batch).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.ProcessActivityLog) bool {
			return e.ActivityType() == ledger.ActivityBatchReported
		})).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.ProcessActivityLog) bool {
			return e.ActivityType() == ledger.ActivityHoldApplied
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFlowUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Kind == ports.EventBatchReported && e.Attributes["reason"] == "low_qty"
	})).Once()

	h := commands.NewVerifyReceiptCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, fx.receiptLog.HasIssues())
	assert.Equal(t, batch.OnHold, fx.batch.Status())
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestVerifyReceiptCommandHandler_Handle_AllocationNotReceived(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	al, err := process.NewBatchAllocation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), nil, now,
	)
	require.NoError(t, err)

	cmd, err := commands.NewVerifyReceiptCommand(
		kernel.NewUUID(), al.ID(), kernel.NewUUID(),
		handover.ActionVerified, handover.ReasonNone, nil, "",
	)
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

	publisher := new(MockEventPublisher)

	h := commands.NewVerifyReceiptCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestVerifyReceiptCommand_ReportedLowQtyRequiresActualQuantity(t *testing.T) {
	_, err := commands.NewVerifyReceiptCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		handover.ActionReported, handover.ReasonLowQty, nil, "short",
	)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
