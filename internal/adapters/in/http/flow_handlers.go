package http

import (
	"net/http"
	"time"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/application/usecases/queries"
	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateBatchRequest is the body of POST /api/v1/batches.
type CreateBatchRequest struct {
	MOID              string  `json:"mo_id"`
	ProductCode       string  `json:"product_code"`
	PlannedQuantityKg float64 `json:"planned_quantity_kg"`
	CreatedBy         string  `json:"created_by"`
}

// CreateBatchResponse carries the identifier of the new batch.
type CreateBatchResponse struct {
	ID string `json:"id"`
}

// CreateBatch handles POST /api/v1/batches.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var req CreateBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	moID, err := kernel.UUIDFromString(req.MOID)
	if err != nil {
		return badRequest(ctx, "invalid mo_id: "+err.Error())
	}

	createdBy, err := kernel.UUIDFromString(req.CreatedBy)
	if err != nil {
		return badRequest(ctx, "invalid created_by: "+err.Error())
	}

	plannedQuantity, err := kernel.NewQuantity(req.PlannedQuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid planned_quantity_kg: "+err.Error())
	}

	batchID := kernel.NewUUID()
	cmd, err := commands.NewCreateBatchCommand(batchID, moID, req.ProductCode, plannedQuantity, createdBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.CreateBatch.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateBatchResponse{ID: batchID.String()})
}

// TimelineEntry is one row of GET /batches/:id/timeline.
type TimelineEntry struct {
	Sequence     int       `json:"sequence"`
	EntryID      string    `json:"entry_id"`
	ActivityType string    `json:"activity_type"`
	Actor        string    `json:"actor"`
	OccurredAt   time.Time `json:"occurred_at"`

	ExecutionID *string `json:"execution_id,omitempty"`

	OKQuantityKg     *float64 `json:"ok_quantity_kg,omitempty"`
	ScrapQuantityKg  *float64 `json:"scrap_quantity_kg,omitempty"`
	ReworkQuantityKg *float64 `json:"rework_quantity_kg,omitempty"`

	Reason  string `json:"reason,omitempty"`
	Remarks string `json:"remarks,omitempty"`
}

// GetBatchTimeline handles GET /api/v1/batches/:id/timeline.
func (s *Server) GetBatchTimeline(ctx echo.Context) error {
	batchID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid batch id")
	}

	query, err := queries.NewGetBatchTimelineQuery(batchID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.handlers.BatchTimeline.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]TimelineEntry, len(rows))
	for i, row := range rows {
		entry := TimelineEntry{
			Sequence:         row.Sequence,
			EntryID:          row.EntryID.String(),
			ActivityType:     row.ActivityType.String(),
			Actor:            row.Actor.String(),
			OccurredAt:       row.OccurredAt,
			OKQuantityKg:     row.OKQuantityKg,
			ScrapQuantityKg:  row.ScrapQuantityKg,
			ReworkQuantityKg: row.ReworkQuantityKg,
			Reason:           row.Reason,
			Remarks:          row.Remarks,
		}
		if row.ExecutionID != nil {
			executionID := row.ExecutionID.String()
			entry.ExecutionID = &executionID
		}
		response[i] = entry
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignOperatorRequest is the body of POST /executions/:id/assign.
type AssignOperatorRequest struct {
	OperatorID string `json:"operator_id"`
	AssignedBy string `json:"assigned_by"`
}

// AssignOperator handles POST /api/v1/executions/:id/assign.
func (s *Server) AssignOperator(ctx echo.Context) error {
	executionID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid execution id")
	}

	var req AssignOperatorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	operatorID, err := kernel.UUIDFromString(req.OperatorID)
	if err != nil {
		return badRequest(ctx, "invalid operator_id: "+err.Error())
	}

	assignedBy, err := kernel.UUIDFromString(req.AssignedBy)
	if err != nil {
		return badRequest(ctx, "invalid assigned_by: "+err.Error())
	}

	cmd, err := commands.NewAssignOperatorCommand(kernel.NewUUID(), executionID, operatorID, assignedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.AssignOperator.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ReassignOperatorRequest is the body of POST /executions/:id/reassign.
type ReassignOperatorRequest struct {
	NewOperatorID string `json:"new_operator_id"`
	ReassignedBy  string `json:"reassigned_by"`
	Reason        string `json:"reason"`
}

// ReassignOperator handles POST /api/v1/executions/:id/reassign.
func (s *Server) ReassignOperator(ctx echo.Context) error {
	executionID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid execution id")
	}

	var req ReassignOperatorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	newOperatorID, err := kernel.UUIDFromString(req.NewOperatorID)
	if err != nil {
		return badRequest(ctx, "invalid new_operator_id: "+err.Error())
	}

	reassignedBy, err := kernel.UUIDFromString(req.ReassignedBy)
	if err != nil {
		return badRequest(ctx, "invalid reassigned_by: "+err.Error())
	}

	cmd, err := commands.NewReassignOperatorCommand(
		kernel.NewUUID(), executionID, newOperatorID, reassignedBy, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.ReassignOperator.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AllocateBatchRequest is the body of POST /api/v1/allocations.
type AllocateBatchRequest struct {
	BatchID            string   `json:"batch_id"`
	ExecutionID        string   `json:"execution_id"`
	FromExecutionID    *string  `json:"from_execution_id,omitempty"`
	OperatorID         string   `json:"operator_id"`
	AllocatedBy        string   `json:"allocated_by"`
	HeatNumbers        []string `json:"heat_numbers"`
	HandoverQuantityKg float64  `json:"handover_quantity_kg"`
}

// AllocateBatchResponse carries the identifiers created by the allocation.
type AllocateBatchResponse struct {
	AllocationID string `json:"allocation_id"`
	ReceiptLogID string `json:"receipt_log_id"`
}

// AllocateBatch handles POST /api/v1/allocations.
func (s *Server) AllocateBatch(ctx echo.Context) error {
	var req AllocateBatchRequest
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

	var fromExecutionID *kernel.UUID
	if req.FromExecutionID != nil {
		from, fromErr := kernel.UUIDFromString(*req.FromExecutionID)
		if fromErr != nil {
			return badRequest(ctx, "invalid from_execution_id: "+fromErr.Error())
		}
		fromExecutionID = &from
	}

	operatorID, err := kernel.UUIDFromString(req.OperatorID)
	if err != nil {
		return badRequest(ctx, "invalid operator_id: "+err.Error())
	}

	allocatedBy, err := kernel.UUIDFromString(req.AllocatedBy)
	if err != nil {
		return badRequest(ctx, "invalid allocated_by: "+err.Error())
	}

	handoverQuantity, err := kernel.NewQuantity(req.HandoverQuantityKg)
	if err != nil {
		return badRequest(ctx, "invalid handover_quantity_kg: "+err.Error())
	}

	allocationID := kernel.NewUUID()
	receiptLogID := kernel.NewUUID()
	cmd, err := commands.NewAllocateBatchCommand(
		allocationID, receiptLogID, batchID, executionID, fromExecutionID,
		operatorID, allocatedBy, req.HeatNumbers, handoverQuantity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.AllocateBatch.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, AllocateBatchResponse{
		AllocationID: allocationID.String(),
		ReceiptLogID: receiptLogID.String(),
	})
}

// ActorRequest is the shared single-actor body used by receive, complete,
// clear-hold, start and resume endpoints.
type ActorRequest struct {
	ActorID string `json:"actor_id"`
}

// ReceiveBatch handles POST /api/v1/allocations/:id/receive.
func (s *Server) ReceiveBatch(ctx echo.Context) error {
	allocationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid allocation id")
	}

	var req ActorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	receivedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewReceiveBatchCommand(allocationID, receivedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.ReceiveBatch.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyReceiptRequest is the body of POST /allocations/:id/verify.
type VerifyReceiptRequest struct {
	VerifiedBy       string   `json:"verified_by"`
	Action           string   `json:"action"`
	Reason           string   `json:"reason"`
	ActualQuantityKg *float64 `json:"actual_quantity_kg,omitempty"`
	Notes            string   `json:"notes"`
}

// VerifyReceiptResponse carries the identifier of the verification record.
type VerifyReceiptResponse struct {
	VerificationID string `json:"verification_id"`
}

// VerifyReceipt handles POST /api/v1/allocations/:id/verify.
func (s *Server) VerifyReceipt(ctx echo.Context) error {
	allocationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid allocation id")
	}

	var req VerifyReceiptRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	verifiedBy, err := kernel.UUIDFromString(req.VerifiedBy)
	if err != nil {
		return badRequest(ctx, "invalid verified_by: "+err.Error())
	}

	action, err := handover.ActionFromString(req.Action)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	reason, err := handover.ReportReasonFromString(req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var actualQuantity *kernel.Quantity
	if req.ActualQuantityKg != nil {
		q, qErr := kernel.NewQuantity(*req.ActualQuantityKg)
		if qErr != nil {
			return badRequest(ctx, "invalid actual_quantity_kg: "+qErr.Error())
		}
		actualQuantity = &q
	}

	verificationID := kernel.NewUUID()
	cmd, err := commands.NewVerifyReceiptCommand(
		verificationID, allocationID, verifiedBy, action, reason, actualQuantity, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.VerifyReceipt.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, VerifyReceiptResponse{
		VerificationID: verificationID.String(),
	})
}

// ClearHold handles POST /api/v1/verifications/:id/clear-hold.
func (s *Server) ClearHold(ctx echo.Context) error {
	verificationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid verification id")
	}

	var req ActorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	clearedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewClearHoldCommand(verificationID, clearedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.ClearHold.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveIssueRequest is the body of POST /verifications/:id/resolve.
type ResolveIssueRequest struct {
	ActorID string `json:"actor_id"`
	Notes   string `json:"notes"`
}

// ResolveIssue handles POST /api/v1/verifications/:id/resolve.
func (s *Server) ResolveIssue(ctx echo.Context) error {
	verificationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid verification id")
	}

	var req ResolveIssueRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	resolvedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewResolveIssueCommand(verificationID, resolvedBy, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.ResolveIssue.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteProcess handles POST /api/v1/allocations/:id/complete.
func (s *Server) CompleteProcess(ctx echo.Context) error {
	allocationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid allocation id")
	}

	var req ActorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	completedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewCompleteProcessCommand(allocationID, completedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.CompleteProcess.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StopProcessRequest is the body of POST /executions/:id/stop.
type StopProcessRequest struct {
	Reason    string `json:"reason"`
	Remarks   string `json:"remarks"`
	StoppedBy string `json:"stopped_by"`
}

// StopProcessResponse carries the identifier of the opened stop.
type StopProcessResponse struct {
	StopID string `json:"stop_id"`
}

// StopProcess handles POST /api/v1/executions/:id/stop.
func (s *Server) StopProcess(ctx echo.Context) error {
	executionID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid execution id")
	}

	var req StopProcessRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	reason, err := downtime.StopReasonFromString(req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	stoppedBy, err := kernel.UUIDFromString(req.StoppedBy)
	if err != nil {
		return badRequest(ctx, "invalid stopped_by: "+err.Error())
	}

	stopID := kernel.NewUUID()
	cmd, err := commands.NewStopProcessCommand(stopID, executionID, reason, req.Remarks, stoppedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.StopProcess.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, StopProcessResponse{StopID: stopID.String()})
}

// ResumeProcess handles POST /api/v1/stops/:id/resume.
func (s *Server) ResumeProcess(ctx echo.Context) error {
	stopID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid stop id")
	}

	var req ActorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	resumedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewResumeProcessCommand(stopID, resumedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.ResumeProcess.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DowntimeSummaryResponse is the body of GET /executions/:id/downtime-summary.
type DowntimeSummaryResponse struct {
	ExecutionID          string         `json:"execution_id"`
	Day                  string         `json:"day"`
	TotalStops           int            `json:"total_stops"`
	TotalDowntimeMinutes int            `json:"total_downtime_minutes"`
	MinutesByReason      map[string]int `json:"minutes_by_reason"`
}

// GetDowntimeSummary handles GET /api/v1/executions/:id/downtime-summary.
// The day query parameter is a calendar date, e.g. 2025-03-14.
func (s *Server) GetDowntimeSummary(ctx echo.Context) error {
	executionID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid execution id")
	}

	day, err := time.Parse("2006-01-02", ctx.QueryParam("day"))
	if err != nil {
		return badRequest(ctx, "invalid day, expected YYYY-MM-DD")
	}

	query, err := queries.NewGetDowntimeSummaryQuery(executionID, day)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.handlers.DowntimeSummary.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	minutesByReason := make(map[string]int, len(result.MinutesByReason))
	for reason, minutes := range result.MinutesByReason {
		minutesByReason[reason.String()] = minutes
	}

	return ctx.JSON(http.StatusOK, DowntimeSummaryResponse{
		ExecutionID:          result.ExecutionID.String(),
		Day:                  result.Day.Format("2006-01-02"),
		TotalStops:           result.TotalStops,
		TotalDowntimeMinutes: result.TotalDowntimeMinutes,
		MinutesByReason:      minutesByReason,
	})
}

// StartProcessing marks a received allocation as being worked.
func (s *Server) StartProcessing(ctx echo.Context) error {
	allocationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid allocation id")
	}

	var req ActorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	startedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewStartProcessingCommand(allocationID, startedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.StartProcessing.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReturnBatchRequest is the body for sending an unreceived allocation back.
type ReturnBatchRequest struct {
	ActorID string `json:"actor_id"`
	Remarks string `json:"remarks"`
}

// ReturnBatch sends an unreceived allocation back to the sender.
func (s *Server) ReturnBatch(ctx echo.Context) error {
	allocationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid allocation id")
	}

	var req ReturnBatchRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	returnedBy, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewReturnBatchCommand(allocationID, returnedBy, req.Remarks)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.handlers.ReturnBatch.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}
