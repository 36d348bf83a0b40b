package queries_test

import (
	"testing"

	"mestrace/internal/core/application/usecases/queries"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetRemainingToAllocateQuery_Valid(t *testing.T) {
	moID := kernel.NewUUID()

	query, err := queries.NewGetRemainingToAllocateQuery(moID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, moID, query.MOID())
}

func TestNewGetRemainingToAllocateQuery_EmptyMOID(t *testing.T) {
	_, err := queries.NewGetRemainingToAllocateQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetRemainingToAllocateQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetRemainingToAllocateQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetRemainingToAllocateQueryIsNotConstructed)
}
