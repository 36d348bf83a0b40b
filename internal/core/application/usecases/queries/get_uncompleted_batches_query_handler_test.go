package queries_test

import (
	"context"
	"testing"
	"time"

	"mestrace/internal/adapters/out/postgres/batchrepo"
	"mestrace/internal/core/application/usecases/queries"
	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker; query tests do not track
// aggregates.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetUncompletedBatchesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetUncompletedBatchesQueryHandler
}

func (suite *GetUncompletedBatchesQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&batchrepo.BatchDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetUncompletedBatchesQueryHandler(db)
}

func (suite *GetUncompletedBatchesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetUncompletedBatchesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE batches").Error
	suite.Require().NoError(err)
}

func (suite *GetUncompletedBatchesQueryHandlerTestSuite) saveBatch(moID kernel.UUID, sequence int) *batch.Batch {
	b, err := batch.NewBatch(
		kernel.NewUUID(), moID, "MO-2025-0042", "SPR-0815",
		"SPR-0815", sequence, kernel.MustQuantity(600), kernel.NewUUID(),
	)
	suite.Require().NoError(err)

	repo := batchrepo.NewGormBatchRepository(suite.db, &mockAggregateTracker{})
	err = repo.Add(context.Background(), b)
	suite.Require().NoError(err)
	return b
}

func (suite *GetUncompletedBatchesQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetUncompletedBatchesQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetUncompletedBatchesQueryHandlerTestSuite) TestHandle_FiltersTerminalBatches() {
	ctx := context.Background()
	moID := kernel.NewUUID()
	repo := batchrepo.NewGormBatchRepository(suite.db, &mockAggregateTracker{})

	inFlight := suite.saveBatch(moID, 1)

	completed := suite.saveBatch(moID, 2)
	suite.Require().NoError(completed.MarkRMAllocated())
	suite.Require().NoError(completed.Start(kernel.MustQuantity(600), time.Now().UTC()))
	suite.Require().NoError(completed.Complete(time.Now().UTC()))
	suite.Require().NoError(repo.Update(ctx, completed))

	cancelled := suite.saveBatch(moID, 3)
	suite.Require().NoError(cancelled.Cancel())
	suite.Require().NoError(repo.Update(ctx, cancelled))

	query, err := queries.NewGetUncompletedBatchesQuery(moID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(inFlight.ID(), result[0].ID)
	suite.Equal("BATCH-MO-2025-0042-001", result[0].BatchNumber)
	suite.Equal(batch.Created, result[0].Status)
	suite.InDelta(600, result[0].PlannedKg, 0.001)
}

func (suite *GetUncompletedBatchesQueryHandlerTestSuite) TestHandle_OrderedBySequence() {
	moID := kernel.NewUUID()
	for _, sequence := range []int{3, 1, 2} {
		suite.saveBatch(moID, sequence)
	}
	// Batches of another MO must not leak in.
	suite.saveBatch(kernel.NewUUID(), 1)

	query, err := queries.NewGetUncompletedBatchesQuery(moID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(1, result[0].Sequence)
	suite.Equal(2, result[1].Sequence)
	suite.Equal(3, result[2].Sequence)
}

func (suite *GetUncompletedBatchesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetUncompletedBatchesQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetUncompletedBatchesQuery constructor")
}

func TestGetUncompletedBatchesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetUncompletedBatchesQueryHandlerTestSuite))
}
