package commands

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/services"
)

// RefreshDowntimeSummariesCommandHandler rebuilds the per-day downtime
// rollups. Summaries are projections of the stops: the recompute replaces
// each row in place and never touches the stops themselves, so the refresh
// can run any number of times.
type RefreshDowntimeSummariesCommandHandler struct {
	uowFactory SummaryUoWFactory
	aggregator *services.DowntimeAggregator
}

// NewRefreshDowntimeSummariesCommandHandler creates a handler for the summary
// refresh.
func NewRefreshDowntimeSummariesCommandHandler(
	uowFactory SummaryUoWFactory,
	aggregator *services.DowntimeAggregator,
) RefreshDowntimeSummariesCommandHandler {
	return RefreshDowntimeSummariesCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

// Handle processes the refresh command.
func (h *RefreshDowntimeSummariesCommandHandler) Handle(ctx context.Context, cmd RefreshDowntimeSummariesCommand) error {
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

	executionIDs, err := uow.StopRepository().GetExecutionsWithStopsOnDay(ctx, cmd.Day())
	if err != nil {
		return err
	}

	for _, executionID := range executionIDs {
		stops, stopsErr := uow.StopRepository().GetResolvedByExecutionAndDay(ctx, executionID, cmd.Day())
		if stopsErr != nil {
			return stopsErr
		}

		summary, sumErr := h.aggregator.Summarize(
			kernel.NewUUID(), executionID, cmd.Day(), stops, now,
		)
		if sumErr != nil {
			return sumErr
		}

		if upsertErr := uow.SummaryRepository().Upsert(ctx, summary); upsertErr != nil {
			return upsertErr
		}
	}

	return uow.Commit(ctx)
}
