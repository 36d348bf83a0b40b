package commands

import (
	"context"
	"strconv"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"
)

// CreatePipelineCommandHandler builds the pipeline of an MO from the process
// catalog. The pipeline is created once, after raw material has been
// allocated, and every step starts pending.
type CreatePipelineCommandHandler struct {
	uowFactory PipelineUoWFactory
	catalog    ports.ProcessCatalog
}

// NewCreatePipelineCommandHandler creates a handler for pipeline setup.
func NewCreatePipelineCommandHandler(
	uowFactory PipelineUoWFactory,
	catalog ports.ProcessCatalog,
) CreatePipelineCommandHandler {
	return CreatePipelineCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the pipeline setup command.
func (h *CreatePipelineCommandHandler) Handle(ctx context.Context, cmd CreatePipelineCommand) error {
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

	mo, err := uow.MORepository().Get(ctx, cmd.MOID())
	if err != nil {
		return err
	}

	if err = mo.Workflow().RequireReleased(); err != nil {
		return err
	}

	existing, err := uow.ExecutionRepository().GetAllByMOID(ctx, mo.ID())
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errs.NewInvalidStateTransitionError("create pipeline",
			"pipeline exists", "no pipeline")
	}

	// The catalog is master data from an adjacent system; an empty pipeline
	// means the product is not routed yet.
	definitions, err := h.catalog.Pipeline(ctx, mo.ProductCode())
	if err != nil {
		return err
	}
	if len(definitions) == 0 {
		return errs.NewObjectNotFoundError("process pipeline", mo.ProductCode())
	}

	for _, definition := range definitions {
		execution, execErr := process.NewProcessExecution(
			kernel.NewUUID(), mo.ID(),
			definition.Code, definition.Name, definition.SequenceOrder,
		)
		if execErr != nil {
			return execErr
		}

		if addErr := uow.ExecutionRepository().Add(ctx, execution); addErr != nil {
			return addErr
		}
	}

	moID := mo.ID()
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), ledger.ActivityPipelineCreated, cmd.CreatedBy(), now,
		ledger.ActivityDetails{
			MOID:    &moID,
			Remarks: strconv.Itoa(len(definitions)) + " steps from catalog",
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
