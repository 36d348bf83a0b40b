package http

import (
	"net/http"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/application/usecases/queries"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateMORequest is the body of POST /api/v1/mos.
type CreateMORequest struct {
	MONumber         string  `json:"mo_number"`
	ProductCode      string  `json:"product_code"`
	TargetQuantityKg float64 `json:"target_quantity_kg"`
	Shift            string  `json:"shift"`
	Priority         string  `json:"priority"`
	CreatedBy        string  `json:"created_by"`
}

// CreateMOResponse carries the identifier of the new MO.
type CreateMOResponse struct {
	ID string `json:"id"`
}

// WorkflowActionRequest is the shared body of the approve, reject and
// allocate-rm endpoints.
type WorkflowActionRequest struct {
	ActorID string `json:"actor_id"`
	Notes   string `json:"notes"`
}

// CreateMO handles POST /api/v1/mos.
func (s *Server) CreateMO(ctx echo.Context) error {
	var req CreateMORequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	createdBy, err := kernel.UUIDFromString(req.CreatedBy)
	if err != nil {
		return badRequest(ctx, "invalid created_by: "+err.Error())
	}

	targetQuantity, err := kernel.NewQuantity(req.TargetQuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid target_quantity_kg: "+err.Error())
	}

	shift, err := order.ShiftFromString(req.Shift)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	priority, err := order.PriorityFromString(req.Priority)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	moID := kernel.NewUUID()
	cmd, err := commands.NewCreateMOCommand(
		moID, req.MONumber, req.ProductCode, targetQuantity, shift, priority, createdBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.CreateMO.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateMOResponse{ID: moID.String()})
}

// ApproveMO handles POST /api/v1/mos/:id/approve.
func (s *Server) ApproveMO(ctx echo.Context) error {
	moID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid mo id")
	}

	var req WorkflowActionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	approverID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewApproveMOCommand(moID, approverID, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.ApproveMO.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectMO handles POST /api/v1/mos/:id/reject.
func (s *Server) RejectMO(ctx echo.Context) error {
	moID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid mo id")
	}

	var req WorkflowActionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	rejectorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewRejectMOCommand(moID, rejectorID, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.RejectMO.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AllocateRM handles POST /api/v1/mos/:id/allocate-rm.
func (s *Server) AllocateRM(ctx echo.Context) error {
	moID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid mo id")
	}

	var req WorkflowActionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	allocatorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewAllocateRMCommand(moID, allocatorID, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.AllocateRM.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreatePipeline handles POST /api/v1/mos/:id/pipeline.
func (s *Server) CreatePipeline(ctx echo.Context) error {
	moID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid mo id")
	}

	var req WorkflowActionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	createdBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewCreatePipelineCommand(moID, createdBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.CreatePipeline.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RemainingToAllocateResponse is the body of GET /mos/:id/remaining-to-allocate.
type RemainingToAllocateResponse struct {
	MOID        string  `json:"mo_id"`
	TargetKg    float64 `json:"target_kg"`
	PlannedKg   float64 `json:"planned_kg"`
	RemainingKg float64 `json:"remaining_kg"`
}

// GetRemainingToAllocate handles GET /api/v1/mos/:id/remaining-to-allocate.
func (s *Server) GetRemainingToAllocate(ctx echo.Context) error {
	moID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid mo id")
	}

	query, err := queries.NewGetRemainingToAllocateQuery(moID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.handlers.RemainingToAllocate.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RemainingToAllocateResponse{
		MOID:        result.MOID.String(),
		TargetKg:    result.TargetKg,
		PlannedKg:   result.PlannedKg,
		RemainingKg: result.RemainingKg,
	})
}

// UncompletedBatch is one row of GET /mos/:id/batches/uncompleted.
type UncompletedBatch struct {
	ID          string  `json:"id"`
	BatchNumber string  `json:"batch_number"`
	Sequence    int     `json:"sequence"`
	Status      string  `json:"status"`
	PlannedKg   float64 `json:"planned_kg"`
	CompletedKg float64 `json:"completed_kg"`
	ScrapKg     float64 `json:"scrap_kg"`
}

// GetUncompletedBatches handles GET /api/v1/mos/:id/batches/uncompleted.
func (s *Server) GetUncompletedBatches(ctx echo.Context) error {
	moID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid mo id")
	}

	query, err := queries.NewGetUncompletedBatchesQuery(moID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.handlers.UncompletedBatches.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]UncompletedBatch, len(rows))
	for i, row := range rows {
		response[i] = UncompletedBatch{
			ID:          row.ID.String(),
			BatchNumber: row.BatchNumber,
			Sequence:    row.Sequence,
			Status:      row.Status.String(),
			PlannedKg:   row.PlannedKg,
			CompletedKg: row.CompletedKg,
			ScrapKg:     row.ScrapKg,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
