package batchrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"mestrace/internal/adapters/out/postgres/batchrepo"
	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// BatchRepositoryIntegrationTestSuite provides integration tests for
// BatchRepository using PostgreSQL containers.
type BatchRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *batchrepo.GormBatchRepository
	tracker    *MockAggregateTracker
}

func (suite *BatchRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&batchrepo.BatchDTO{},
		&batchrepo.BatchCounterDTO{},
		&batchrepo.FGVerificationDTO{},
	))
}

func (suite *BatchRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE batches, batch_counters, fg_verifications").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = batchrepo.NewGormBatchRepository(suite.db, suite.tracker)
}

func (suite *BatchRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BatchRepositoryIntegrationTestSuite) createTestBatch(moID kernel.UUID, sequence int) *batch.Batch {
	b, err := batch.NewBatch(
		kernel.NewUUID(), moID, "MO-2025-0042", "SPR-0815",
		"SPR-0815", sequence, kernel.MustQuantity(600), kernel.NewUUID(),
	)
	suite.Require().NoError(err)
	return b
}

func (suite *BatchRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	moID := kernel.NewUUID()
	original := suite.createTestBatch(moID, 3)

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("BATCH-MO-2025-0042-003", retrieved.BatchNumber())
	suite.Equal(3, retrieved.Sequence())
	suite.Equal(moID, retrieved.MOID())
	suite.Equal(batch.Created, retrieved.Status())
	suite.InDelta(600, retrieved.PlannedQuantity().Kg(), 0.001)
	suite.Nil(retrieved.ActualStart())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *BatchRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleChanges() {
	ctx := context.Background()
	b := suite.createTestBatch(kernel.NewUUID(), 1)

	suite.tracker.On("TrackAggregate", b.ID(), b).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, b))

	suite.Require().NoError(b.MarkRMAllocated())
	suite.Require().NoError(b.Start(kernel.MustQuantity(595), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, b))

	retrieved, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(batch.InProcess, retrieved.Status())
	suite.InDelta(595, retrieved.StartedQuantity().Kg(), 0.001)
	suite.NotNil(retrieved.ActualStart())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *BatchRepositoryIntegrationTestSuite) TestGet_NonExistentBatch_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *BatchRepositoryIntegrationTestSuite) TestGetAllByMOID_OrderedBySequence() {
	ctx := context.Background()
	moID := kernel.NewUUID()

	for _, sequence := range []int{2, 1, 3} {
		b := suite.createTestBatch(moID, sequence)
		suite.tracker.On("TrackAggregate", b.ID(), b).Once()
		suite.Require().NoError(suite.repository.Add(ctx, b))
	}

	batches, err := suite.repository.GetAllByMOID(ctx, moID)
	suite.Require().NoError(err)
	suite.Require().Len(batches, 3)
	suite.Equal(1, batches[0].Sequence())
	suite.Equal(2, batches[1].Sequence())
	suite.Equal(3, batches[2].Sequence())
}

func (suite *BatchRepositoryIntegrationTestSuite) TestNextSequence_Sequential() {
	ctx := context.Background()
	moID := kernel.NewUUID()

	for want := 1; want <= 3; want++ {
		got, err := suite.repository.NextSequence(ctx, moID)
		suite.Require().NoError(err)
		suite.Equal(want, got)
	}

	otherMO := kernel.NewUUID()
	got, err := suite.repository.NextSequence(ctx, otherMO)
	suite.Require().NoError(err)
	suite.Equal(1, got)
}

// TestNextSequence_ConcurrentClaimsAreDistinct runs concurrent claims inside
// separate transactions against one MO that has no counter row yet. The
// ON CONFLICT seed plus the FOR UPDATE lock must serialize the first claim
// and every later one, so each claimer gets a distinct number starting at 1.
func (suite *BatchRepositoryIntegrationTestSuite) TestNextSequence_ConcurrentClaimsAreDistinct() {
	ctx := context.Background()
	moID := kernel.NewUUID()

	const claimers = 10
	results := make(chan int, claimers)
	errsCh := make(chan error, claimers)

	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txErr := suite.db.Transaction(func(tx *gorm.DB) error {
				repo := batchrepo.NewGormBatchRepository(tx, suite.tracker)
				sequence, seqErr := repo.NextSequence(ctx, moID)
				if seqErr != nil {
					return seqErr
				}
				results <- sequence
				return nil
			})
			if txErr != nil {
				errsCh <- txErr
			}
		}()
	}
	wg.Wait()
	close(results)
	close(errsCh)

	for txErr := range errsCh {
		suite.Require().NoError(txErr)
	}

	seen := make(map[int]bool)
	for sequence := range results {
		suite.False(seen[sequence], "sequence %d claimed twice", sequence)
		seen[sequence] = true
	}
	suite.Len(seen, claimers)
	for want := 1; want <= claimers; want++ {
		suite.True(seen[want], "sequence %d never claimed", want)
	}
}

func TestBatchRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(BatchRepositoryIntegrationTestSuite))
}
