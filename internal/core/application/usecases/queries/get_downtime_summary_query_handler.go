package queries

import (
	"context"
	"time"

	"mestrace/internal/core/domain/model/downtime"

	"gorm.io/gorm"
)

// GetDowntimeSummaryQueryHandler recomputes the downtime rollup directly in
// the database by grouping the day's resolved stops per reason. It does not
// read the persisted summary rows, so it reflects stops resolved after the
// last refresh job run.
type GetDowntimeSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetDowntimeSummaryQueryHandler creates a handler for downtime summary
// queries. Requires a GORM database connection for query execution.
func NewGetDowntimeSummaryQueryHandler(db *gorm.DB) GetDowntimeSummaryQueryHandler {
	return GetDowntimeSummaryQueryHandler{db: db}
}

// Handle executes the summary query for one execution and day.
func (h GetDowntimeSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetDowntimeSummaryQuery,
) (GetDowntimeSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDowntimeSummaryQueryResponse{}, err
	}

	from := query.Day()
	to := from.Add(24 * time.Hour)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			reason,
			COUNT(*),
			COALESCE(SUM(downtime_minutes), 0)
		FROM process_stops
		WHERE execution_id = ?
		  AND resumed_at IS NOT NULL
		  AND stopped_at >= ?
		  AND stopped_at < ?
		GROUP BY reason
		ORDER BY reason
	`, query.ExecutionID().Bytes(), from, to).Rows()
	if err != nil {
		return GetDowntimeSummaryQueryResponse{}, err
	}
	defer rows.Close()

	response := GetDowntimeSummaryQueryResponse{
		ExecutionID:     query.ExecutionID(),
		Day:             query.Day(),
		MinutesByReason: make(map[downtime.StopReason]int),
	}

	for rows.Next() {
		var reason, stops, minutes int

		if err = rows.Scan(&reason, &stops, &minutes); err != nil {
			return GetDowntimeSummaryQueryResponse{}, err
		}

		response.TotalStops += stops
		response.TotalDowntimeMinutes += minutes
		response.MinutesByReason[downtime.StopReason(reason)] = minutes
	}

	if err = rows.Err(); err != nil {
		return GetDowntimeSummaryQueryResponse{}, err
	}

	return response, nil
}
