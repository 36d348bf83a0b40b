package queries_test

import (
	"testing"
	"time"

	"mestrace/internal/core/application/usecases/queries"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDowntimeSummaryQuery_Valid(t *testing.T) {
	executionID := kernel.NewUUID()
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	query, err := queries.NewGetDowntimeSummaryQuery(executionID, at)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, executionID, query.ExecutionID())
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), query.Day(),
		"day should be normalized to a UTC calendar date")
}

func TestNewGetDowntimeSummaryQuery_EmptyExecutionID(t *testing.T) {
	_, err := queries.NewGetDowntimeSummaryQuery(kernel.UUID{}, time.Now())
	require.Error(t, err)
}

func TestGetDowntimeSummaryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDowntimeSummaryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDowntimeSummaryQueryIsNotConstructed)
}
