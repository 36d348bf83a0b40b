package jobs

import (
	"context"
	"log/slog"
	"time"

	"mestrace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DowntimeSummaryJob manages the scheduled recompute of per-day downtime
// rollups. Runs every five minutes and refreshes both the current UTC day and
// the previous one, so stops resolved shortly after midnight still land in the
// day they belong to.
type DowntimeSummaryJob struct {
	handler commands.RefreshDowntimeSummariesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDowntimeSummaryJob creates a new job for refreshing downtime summaries.
// Uses RefreshDowntimeSummariesCommandHandler to rebuild the rollups.
func NewDowntimeSummaryJob(handler commands.RefreshDowntimeSummariesCommandHandler, logger *slog.Logger) *DowntimeSummaryJob {
	return &DowntimeSummaryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "downtime_summary_job"),
	}
}

// Start begins the downtime summary job to run every five minutes.
func (j *DowntimeSummaryJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		for _, day := range []time.Time{now.AddDate(0, 0, -1), now} {
			cmd, cmdErr := commands.NewRefreshDowntimeSummariesCommand(day)
			if cmdErr != nil {
				j.logger.ErrorContext(ctx, "Downtime summary job failed to build command", "error", cmdErr)
				continue
			}

			if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
				j.logger.ErrorContext(ctx, "Downtime summary job failed", "day", cmd.Day(), "error", handleErr)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Downtime summary job started (running every five minutes)")
	return nil
}

// Stop stops the downtime summary job.
func (j *DowntimeSummaryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Downtime summary job stopped")
}
