package http

import (
	"net/http"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// RecordCompletionRequest is the body of POST /api/v1/completions.
type RecordCompletionRequest struct {
	BatchID           string  `json:"batch_id"`
	ExecutionID       string  `json:"execution_id"`
	CompletedBy       string  `json:"completed_by"`
	SupervisorID      string  `json:"supervisor_id"`
	InputQuantityKg   float64 `json:"input_quantity_kg"`
	OKQuantityKg      float64 `json:"ok_quantity_kg"`
	ScrapQuantityKg   float64 `json:"scrap_quantity_kg"`
	ReworkQuantityKg  float64 `json:"rework_quantity_kg"`
	DefectDescription string  `json:"defect_description"`
	Remarks           string  `json:"remarks"`
}

// RecordCompletionResponse carries the identifiers the completion may create.
// ReworkBatchID is only meaningful when the rework quantity was positive.
type RecordCompletionResponse struct {
	CompletionID  string `json:"completion_id"`
	ReworkBatchID string `json:"rework_batch_id"`
}

// RecordCompletion handles POST /api/v1/completions.
func (s *Server) RecordCompletion(ctx echo.Context) error {
	var req RecordCompletionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	batchID, err := kernel.UUIDFromString(req.BatchID)
	if err != nil {
		return badRequest(ctx, "invalid batch_id: "+err.Error())
	}

	executionID, err := kernel.UUIDFromString(req.ExecutionID)
	if err != nil {
		return badRequest(ctx, "invalid execution_id: "+err.Error())
	}

	completedBy, err := kernel.UUIDFromString(req.CompletedBy)
	if err != nil {
		return badRequest(ctx, "invalid completed_by: "+err.Error())
	}

	supervisorID, err := kernel.UUIDFromString(req.SupervisorID)
	if err != nil {
		return badRequest(ctx, "invalid supervisor_id: "+err.Error())
	}

	inputQuantity, err := kernel.NewQuantity(req.InputQuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid input_quantity_kg: "+err.Error())
	}

	okQuantity, err := kernel.NewQuantity(req.OKQuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid ok_quantity_kg: "+err.Error())
	}

	scrapQuantity, err := kernel.NewQuantity(req.ScrapQuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid scrap_quantity_kg: "+err.Error())
	}

	reworkQuantity, err := kernel.NewQuantity(req.ReworkQuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid rework_quantity_kg: "+err.Error())
	}

	completionID := kernel.NewUUID()
	reworkBatchID := kernel.NewUUID()
	cmd, err := commands.NewRecordCompletionCommand(
		completionID, reworkBatchID, batchID, executionID, completedBy, supervisorID,
		inputQuantity, okQuantity, scrapQuantity, reworkQuantity,
		req.DefectDescription, req.Remarks)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.RecordCompletion.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	response := RecordCompletionResponse{CompletionID: completionID.String()}
	if req.ReworkQuantityKg > 0 {
		response.ReworkBatchID = reworkBatchID.String()
	}
	return ctx.JSON(http.StatusCreated, response)
}

// StartRework handles POST /api/v1/rework-batches/:id/start.
func (s *Server) StartRework(ctx echo.Context) error {
	reworkBatchID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid rework batch id")
	}

	var req ActorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	startedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewStartReworkCommand(reworkBatchID, startedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.StartRework.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteReworkRequest is the body of POST /rework-batches/:id/complete.
type CompleteReworkRequest struct {
	CompletedBy     string  `json:"completed_by"`
	OKQuantityKg    float64 `json:"ok_quantity_kg"`
	ScrapQuantityKg float64 `json:"scrap_quantity_kg"`
	Remarks         string  `json:"remarks"`
}

// CompleteRework handles POST /api/v1/rework-batches/:id/complete.
func (s *Server) CompleteRework(ctx echo.Context) error {
	reworkBatchID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid rework batch id")
	}

	var req CompleteReworkRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	completedBy, err := kernel.UUIDFromString(req.CompletedBy)
	if err != nil {
		return badRequest(ctx, "invalid completed_by: "+err.Error())
	}

	okQuantity, err := kernel.NewQuantity(req.OKQuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid ok_quantity_kg: "+err.Error())
	}

	scrapQuantity, err := kernel.NewQuantity(req.ScrapQuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid scrap_quantity_kg: "+err.Error())
	}

	cmd, err := commands.NewCompleteReworkCommand(
		reworkBatchID, kernel.NewUUID(), completedBy, okQuantity, scrapQuantity, req.Remarks)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.CompleteRework.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateFIReworkRequest is the body of POST /api/v1/fi-reworks.
type CreateFIReworkRequest struct {
	BatchID              string  `json:"batch_id"`
	DefectiveExecutionID string  `json:"defective_execution_id"`
	QuantityKg           float64 `json:"quantity_kg"`
	DefectDescription    string  `json:"defect_description"`
	CreatedBy            string  `json:"created_by"`
}

// CreateFIReworkResponse carries the identifier of the new rework record.
type CreateFIReworkResponse struct {
	ID string `json:"id"`
}

// CreateFIRework handles POST /api/v1/fi-reworks.
func (s *Server) CreateFIRework(ctx echo.Context) error {
	var req CreateFIReworkRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	batchID, err := kernel.UUIDFromString(req.BatchID)
	if err != nil {
		return badRequest(ctx, "invalid batch_id: "+err.Error())
	}

	defectiveExecutionID, err := kernel.UUIDFromString(req.DefectiveExecutionID)
	if err != nil {
		return badRequest(ctx, "invalid defective_execution_id: "+err.Error())
	}

	quantity, err := kernel.NewQuantity(req.QuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid quantity_kg: "+err.Error())
	}

	createdBy, err := kernel.UUIDFromString(req.CreatedBy)
	if err != nil {
		return badRequest(ctx, "invalid created_by: "+err.Error())
	}

	fiReworkID := kernel.NewUUID()
	cmd, err := commands.NewCreateFIReworkCommand(
		fiReworkID, batchID, defectiveExecutionID, quantity, req.DefectDescription, createdBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.CreateFIRework.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateFIReworkResponse{ID: fiReworkID.String()})
}

// StartFIRework handles POST /api/v1/fi-reworks/:id/start.
func (s *Server) StartFIRework(ctx echo.Context) error {
	fiReworkID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid fi rework id")
	}

	var req ActorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	startedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewStartFIReworkCommand(fiReworkID, startedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.StartFIRework.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteFIRework handles POST /api/v1/fi-reworks/:id/complete.
func (s *Server) CompleteFIRework(ctx echo.Context) error {
	fiReworkID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid fi rework id")
	}

	var req ActorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	completedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewCompleteFIReworkCommand(fiReworkID, completedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.CompleteFIRework.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReinspectRequest is the body of POST /fi-reworks/:id/reinspect.
type ReinspectRequest struct {
	ReinspectedBy string `json:"reinspected_by"`
	Passed        bool   `json:"passed"`
	DefectRemarks string `json:"defect_remarks"`
}

// Reinspect handles POST /api/v1/fi-reworks/:id/reinspect.
func (s *Server) Reinspect(ctx echo.Context) error {
	fiReworkID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid fi rework id")
	}

	var req ReinspectRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	reinspectedBy, err := kernel.UUIDFromString(req.ReinspectedBy)
	if err != nil {
		return badRequest(ctx, "invalid reinspected_by: "+err.Error())
	}

	cmd, err := commands.NewReinspectCommand(
		fiReworkID, kernel.NewUUID(), reinspectedBy, req.Passed, req.DefectRemarks)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.Reinspect.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordFGQualityCheckRequest is the body for the finished-goods quality
// verdict.
type RecordFGQualityCheckRequest struct {
	CheckedBy string `json:"checked_by"`
	Passed    bool   `json:"passed"`
	Notes     string `json:"notes"`
}

// RecordFGQualityCheck stamps the finished-goods quality verdict on a
// pending verification.
func (s *Server) RecordFGQualityCheck(ctx echo.Context) error {
	verificationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid verification id")
	}

	var req RecordFGQualityCheckRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	checkedBy, err := kernel.UUIDFromString(req.CheckedBy)
	if err != nil {
		return badRequest(ctx, "invalid checked_by: "+err.Error())
	}

	cmd, err := commands.NewRecordFGQualityCheckCommand(
		verificationID, checkedBy, req.Passed, req.Notes,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.RecordFGQualityCheck.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchFG releases a quality-passed batch from the finished-goods store.
func (s *Server) DispatchFG(ctx echo.Context) error {
	verificationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid verification id")
	}

	var req ActorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	dispatchedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewDispatchFGCommand(verificationID, dispatchedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.DispatchFG.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}
