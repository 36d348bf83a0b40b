package commands

import (
	"context"
	"errors"
	"time"

	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/pkg/errs"
)

// CreateBatchCommandHandler splits a batch off a released MO. The sequence
// number is claimed atomically in the same transaction that inserts the
// batch, so concurrent splits of one MO get distinct, gapless-enough numbers
// and the deterministic BATCH-<mo>-<NNN> identity never collides.
type CreateBatchCommandHandler struct {
	uowFactory BatchUoWFactory
}

// NewCreateBatchCommandHandler creates a handler for batch creation.
func NewCreateBatchCommandHandler(uowFactory BatchUoWFactory) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{uowFactory: uowFactory}
}

// Handle processes the batch creation command.
//
// Business rules enforced here:
//   - The MO's workflow must have released it to production
//   - The batch product code must match the MO product code
func (h *CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.attempt(ctx, cmd)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		// A concurrent split claimed the same sequence. A fresh transaction
		// draws the next number from the repaired counter.
		err = h.attempt(ctx, cmd)
	}
	return err
}

func (h *CreateBatchCommandHandler) attempt(ctx context.Context, cmd CreateBatchCommand) error {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mo, err := uow.MORepository().Get(ctx, cmd.MOID())
	if err != nil {
		return err
	}

	if err = mo.Workflow().RequireReleased(); err != nil {
		return err
	}

	sequence, err := uow.BatchRepository().NextSequence(ctx, mo.ID())
	if err != nil {
		return err
	}

	b, err := batch.NewBatch(
		cmd.BatchID(), mo.ID(), mo.MONumber(), mo.ProductCode(),
		cmd.ProductCode(), sequence, cmd.PlannedQuantity(), cmd.CreatedBy(),
	)
	if err != nil {
		return err
	}

	if err = uow.BatchRepository().Add(ctx, b); err != nil {
		return err
	}

	moID := mo.ID()
	batchID := b.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityBatchCreated, cmd.CreatedBy(), now,
		ledger.ActivityDetails{
			MOID:    &moID,
			BatchID: &batchID,
			Remarks: b.BatchNumber(),
		},
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
