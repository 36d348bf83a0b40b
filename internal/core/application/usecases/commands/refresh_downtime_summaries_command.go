package commands

import (
	"errors"
	"time"

	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/pkg/errs"
	"mestrace/internal/pkg/guard"
)

var ErrRefreshDowntimeSummariesCommandIsNotConstructed = errors.New(
	"RefreshDowntimeSummariesCommand must be created via NewRefreshDowntimeSummariesCommand constructor",
)

// RefreshDowntimeSummariesCommand recomputes the per-day downtime rollups for
// every pipeline step that had a resolved stop on the given day.
type RefreshDowntimeSummariesCommand struct { //nolint:recvcheck //using for validation
	day time.Time

	guard guard.ConstructorGuard
}

// NewRefreshDowntimeSummariesCommand creates the refresh command. The day is
// normalized to a UTC calendar date.
func NewRefreshDowntimeSummariesCommand(day time.Time) (RefreshDowntimeSummariesCommand, error) {
	if day.IsZero() {
		return RefreshDowntimeSummariesCommand{}, errs.NewValueIsRequiredError("day")
	}

	return RefreshDowntimeSummariesCommand{
		day:   downtime.Day(day),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshDowntimeSummariesCommand) Validate() error {
	return c.guard.Validate(ErrRefreshDowntimeSummariesCommandIsNotConstructed)
}

// Day returns the UTC calendar date being refreshed.
func (c RefreshDowntimeSummariesCommand) Day() time.Time {
	return c.day
}
