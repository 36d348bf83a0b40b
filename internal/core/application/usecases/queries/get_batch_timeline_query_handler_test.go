package queries_test

import (
	"context"
	"testing"
	"time"

	"mestrace/internal/adapters/out/postgres/ledgerrepo"
	"mestrace/internal/core/application/usecases/queries"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetBatchTimelineQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetBatchTimelineQueryHandler
}

func (suite *GetBatchTimelineQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&ledgerrepo.ActivityLogDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetBatchTimelineQueryHandler(db)
}

func (suite *GetBatchTimelineQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetBatchTimelineQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE process_activity_logs").Error
	suite.Require().NoError(err)
}

func (suite *GetBatchTimelineQueryHandlerTestSuite) appendEntry(
	activityType ledger.ActivityType,
	occurredAt time.Time,
	details ledger.ActivityDetails,
) *ledger.ProcessActivityLog {
	entry, err := ledger.NewProcessActivityLog(
		kernel.NewUUID(), activityType, kernel.NewUUID(), occurredAt, details,
	)
	suite.Require().NoError(err)

	repo := ledgerrepo.NewGormLedgerRepository(suite.db)
	err = repo.Append(context.Background(), entry)
	suite.Require().NoError(err)
	return entry
}

func (suite *GetBatchTimelineQueryHandlerTestSuite) TestHandle_UnknownBatch_ReturnsEmptyTimeline() {
	query, err := queries.NewGetBatchTimelineQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetBatchTimelineQueryHandlerTestSuite) TestHandle_ChronologicalOrderWithDetails() {
	batchID := kernel.NewUUID()
	moID := kernel.NewUUID()
	executionID := kernel.NewUUID()
	base := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

	okQty := kernel.MustQuantity(570)
	scrapQty := kernel.MustQuantity(30)

	// Appended out of chronological order on purpose.
	completed := suite.appendEntry(ledger.ActivityBatchCompleted, base.Add(4*time.Hour),
		ledger.ActivityDetails{
			MOID:          &moID,
			BatchID:       &batchID,
			ExecutionID:   &executionID,
			OKQuantity:    &okQty,
			ScrapQuantity: &scrapQty,
			Remarks:       "surface defects on 30 kg",
		})
	created := suite.appendEntry(ledger.ActivityBatchCreated, base,
		ledger.ActivityDetails{MOID: &moID, BatchID: &batchID})
	started := suite.appendEntry(ledger.ActivityBatchStarted, base.Add(time.Hour),
		ledger.ActivityDetails{MOID: &moID, BatchID: &batchID, ExecutionID: &executionID})

	// Entry of another batch must not appear.
	otherBatchID := kernel.NewUUID()
	suite.appendEntry(ledger.ActivityBatchCreated, base,
		ledger.ActivityDetails{MOID: &moID, BatchID: &otherBatchID})

	query, err := queries.NewGetBatchTimelineQuery(batchID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal(1, result[0].Sequence)
	suite.Equal(created.ID(), result[0].EntryID)
	suite.Equal(ledger.ActivityBatchCreated, result[0].ActivityType)
	suite.Nil(result[0].ExecutionID)
	suite.Nil(result[0].OKQuantityKg)

	suite.Equal(2, result[1].Sequence)
	suite.Equal(started.ID(), result[1].EntryID)
	suite.Require().NotNil(result[1].ExecutionID)
	suite.True(result[1].ExecutionID.IsEqual(executionID))

	suite.Equal(3, result[2].Sequence)
	suite.Equal(completed.ID(), result[2].EntryID)
	suite.Require().NotNil(result[2].OKQuantityKg)
	suite.InDelta(570, *result[2].OKQuantityKg, 0.001)
	suite.Require().NotNil(result[2].ScrapQuantityKg)
	suite.InDelta(30, *result[2].ScrapQuantityKg, 0.001)
	suite.Nil(result[2].ReworkQuantityKg)
	suite.Equal("surface defects on 30 kg", result[2].Remarks)
}

func (suite *GetBatchTimelineQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetBatchTimelineQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetBatchTimelineQuery constructor")
}

func TestGetBatchTimelineQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetBatchTimelineQueryHandlerTestSuite))
}
