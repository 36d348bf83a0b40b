// Package http exposes the engine's commands and queries over a REST API.
// Handlers translate between the wire format and command/query constructors;
// every business rule stays behind the use case layer.
package http

import (
	"errors"
	"net/http"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/application/usecases/queries"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	CreateMO       commands.CreateMOCommandHandler
	ApproveMO      commands.ApproveMOCommandHandler
	RejectMO       commands.RejectMOCommandHandler
	AllocateRM     commands.AllocateRMCommandHandler
	CreatePipeline commands.CreatePipelineCommandHandler
	CreateBatch    commands.CreateBatchCommandHandler

	AssignOperator   commands.AssignOperatorCommandHandler
	ReassignOperator commands.ReassignOperatorCommandHandler
	AllocateBatch    commands.AllocateBatchCommandHandler
	ReceiveBatch     commands.ReceiveBatchCommandHandler
	StartProcessing  commands.StartProcessingCommandHandler
	ReturnBatch      commands.ReturnBatchCommandHandler
	VerifyReceipt    commands.VerifyReceiptCommandHandler
	ClearHold        commands.ClearHoldCommandHandler
	ResolveIssue     commands.ResolveIssueCommandHandler
	CompleteProcess  commands.CompleteProcessCommandHandler

	RecordCompletion commands.RecordCompletionCommandHandler
	StartRework      commands.StartReworkCommandHandler
	CompleteRework   commands.CompleteReworkCommandHandler
	CreateFIRework   commands.CreateFIReworkCommandHandler
	StartFIRework    commands.StartFIReworkCommandHandler
	CompleteFIRework commands.CompleteFIReworkCommandHandler
	Reinspect        commands.ReinspectCommandHandler

	RecordFGQualityCheck commands.RecordFGQualityCheckCommandHandler
	DispatchFG           commands.DispatchFGCommandHandler

	StopProcess   commands.StopProcessCommandHandler
	ResumeProcess commands.ResumeProcessCommandHandler

	RemainingToAllocate queries.GetRemainingToAllocateQueryHandler
	UncompletedBatches  queries.GetUncompletedBatchesQueryHandler
	BatchTimeline       queries.GetBatchTimelineQueryHandler
	DowntimeSummary     queries.GetDowntimeSummaryQueryHandler
}

// Server dispatches HTTP requests to command and query handlers.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server over the given use case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/mos", s.CreateMO)
	api.POST("/mos/:id/approve", s.ApproveMO)
	api.POST("/mos/:id/reject", s.RejectMO)
	api.POST("/mos/:id/allocate-rm", s.AllocateRM)
	api.POST("/mos/:id/pipeline", s.CreatePipeline)
	api.GET("/mos/:id/remaining-to-allocate", s.GetRemainingToAllocate)
	api.GET("/mos/:id/batches/uncompleted", s.GetUncompletedBatches)

	api.POST("/batches", s.CreateBatch)
	api.GET("/batches/:id/timeline", s.GetBatchTimeline)

	api.POST("/executions/:id/assign", s.AssignOperator)
	api.POST("/executions/:id/reassign", s.ReassignOperator)
	api.POST("/executions/:id/stop", s.StopProcess)
	api.GET("/executions/:id/downtime-summary", s.GetDowntimeSummary)
	api.POST("/stops/:id/resume", s.ResumeProcess)

	api.POST("/allocations", s.AllocateBatch)
	api.POST("/allocations/:id/receive", s.ReceiveBatch)
	api.POST("/allocations/:id/start", s.StartProcessing)
	api.POST("/allocations/:id/return", s.ReturnBatch)
	api.POST("/allocations/:id/verify", s.VerifyReceipt)
	api.POST("/allocations/:id/complete", s.CompleteProcess)
	api.POST("/verifications/:id/clear-hold", s.ClearHold)
	api.POST("/verifications/:id/resolve", s.ResolveIssue)

	api.POST("/completions", s.RecordCompletion)
	api.POST("/rework-batches/:id/start", s.StartRework)
	api.POST("/rework-batches/:id/complete", s.CompleteRework)

	api.POST("/fi-reworks", s.CreateFIRework)
	api.POST("/fi-reworks/:id/start", s.StartFIRework)
	api.POST("/fi-reworks/:id/complete", s.CompleteFIRework)
	api.POST("/fi-reworks/:id/reinspect", s.Reinspect)

	api.POST("/fg-verifications/:id/quality-check", s.RecordFGQualityCheck)
	api.POST("/fg-verifications/:id/dispatch", s.DispatchFG)
}

// pathUUID parses the :id path parameter.
func pathUUID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps a use case error onto the HTTP status taxonomy: unknown
// aggregates are 404, illegal transitions and conservation violations are
// 409, bad values are 400, everything else is 500.
func respondError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	switch {
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrConservationViolation):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	}
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}
