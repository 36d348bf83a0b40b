package queries_test

import (
	"testing"

	"mestrace/internal/core/application/usecases/queries"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetBatchTimelineQuery_Valid(t *testing.T) {
	batchID := kernel.NewUUID()

	query, err := queries.NewGetBatchTimelineQuery(batchID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, batchID, query.BatchID())
}

func TestNewGetBatchTimelineQuery_EmptyBatchID(t *testing.T) {
	_, err := queries.NewGetBatchTimelineQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetBatchTimelineQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetBatchTimelineQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetBatchTimelineQueryIsNotConstructed)
}
