package workorderrepo_test

import (
	"context"
	"testing"
	"time"

	"atelier/internal/adapters/out/postgres/workorderrepo"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/pkg/errs"

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

// WorkOrderRepositoryIntegrationTestSuite verifies work order persistence
// against a real PostgreSQL instance, in particular the optimistic stage
// commit.
type WorkOrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *workorderrepo.GormWorkOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&workorderrepo.WorkOrderDTO{}))
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE work_orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = workorderrepo.NewGormWorkOrderRepository(suite.db, suite.tracker)
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	dueAt := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	original := suite.createWorkOrder(workorder.MeasurementPending, &dueAt)

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(workorder.MeasurementPending, retrieved.Stage())
	suite.Equal(original.Customer().Name(), retrieved.Customer().Name())
	suite.Equal(original.Customer().Email(), retrieved.Customer().Email())
	suite.Equal(original.Priority(), retrieved.Priority())
	suite.Require().NotNil(retrieved.DueAt())
	suite.True(dueAt.Equal(retrieved.DueAt().UTC()))
	suite.Empty(retrieved.ExternalOrderID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) TestGetByExternalOrderID() {
	ctx := context.Background()

	customer := suite.createCustomer()
	ingested, err := workorder.NewExternalWorkOrder(kernel.NewUUID(), "SO-2026-0042", customer, 2)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", ingested.ID(), ingested).Once()
	suite.Require().NoError(suite.repository.Add(ctx, ingested))

	retrieved, err := suite.repository.GetByExternalOrderID(ctx, "SO-2026-0042")
	suite.Require().NoError(err)
	suite.Equal(ingested.ID(), retrieved.ID())
	suite.Equal("SO-2026-0042", retrieved.ExternalOrderID())

	_, err = suite.repository.GetByExternalOrderID(ctx, "SO-2026-9999")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) TestAdd_DuplicateExternalOrderID_Fails() {
	ctx := context.Background()

	customer := suite.createCustomer()
	first, err := workorder.NewExternalWorkOrder(kernel.NewUUID(), "SO-2026-0100", customer, 1)
	suite.Require().NoError(err)
	second, err := workorder.NewExternalWorkOrder(kernel.NewUUID(), "SO-2026-0100", customer, 1)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	suite.Require().Error(suite.repository.Add(ctx, second))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) TestCommitStage_Success() {
	ctx := context.Background()

	wo := suite.createWorkOrder(workorder.MeasurementPending, nil)
	suite.tracker.On("TrackAggregate", wo.ID(), wo).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, wo))

	from := wo.Stage()
	suite.Require().NoError(wo.ChangeStage(workorder.MeasurementSubmitted))
	suite.Require().NoError(suite.repository.CommitStage(ctx, wo, from))

	retrieved, err := suite.repository.Get(ctx, wo.ID())
	suite.Require().NoError(err)
	suite.Equal(workorder.MeasurementSubmitted, retrieved.Stage())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) TestCommitStage_StaleExpectedStage_Conflict() {
	ctx := context.Background()

	wo := suite.createWorkOrder(workorder.InProduction, nil)
	suite.tracker.On("TrackAggregate", wo.ID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, wo))

	// First writer commits in_production -> in_qc.
	winner, err := suite.repository.Get(ctx, wo.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(winner.ChangeStage(workorder.InQC))
	suite.Require().NoError(suite.repository.CommitStage(ctx, winner, workorder.InProduction))

	// Second writer still holds the stale in_production snapshot.
	loser, err := workorder.RestoreWorkOrder(
		wo.ID(), wo.ExternalOrderID(), wo.Customer(),
		workorder.InProduction, wo.Priority(), wo.DueAt(), wo.AssignedTailorID())
	suite.Require().NoError(err)
	suite.Require().NoError(loser.ChangeStage(workorder.Blocked))

	err = suite.repository.CommitStage(ctx, loser, workorder.InProduction)
	suite.Require().ErrorIs(err, errs.ErrStageConflict)

	retrieved, err := suite.repository.Get(ctx, wo.ID())
	suite.Require().NoError(err)
	suite.Equal(workorder.InQC, retrieved.Stage())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) TestUpdate_DoesNotTouchStage() {
	ctx := context.Background()

	wo := suite.createWorkOrder(workorder.InProduction, nil)
	suite.tracker.On("TrackAggregate", wo.ID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, wo))

	tailorID := kernel.NewUUID()
	suite.Require().NoError(wo.AssignTailor(tailorID))
	suite.Require().NoError(wo.SetPriority(9))
	suite.Require().NoError(suite.repository.Update(ctx, wo))

	retrieved, err := suite.repository.Get(ctx, wo.ID())
	suite.Require().NoError(err)
	suite.Equal(workorder.InProduction, retrieved.Stage())
	suite.Equal(9, retrieved.Priority())
	suite.Require().NotNil(retrieved.AssignedTailorID())
	suite.Equal(tailorID, *retrieved.AssignedTailorID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) TestGet_SoftDeleted_ReturnsNotFoundError() {
	ctx := context.Background()

	wo := suite.createWorkOrder(workorder.Completed, nil)
	suite.tracker.On("TrackAggregate", wo.ID(), wo).Once()
	suite.Require().NoError(suite.repository.Add(ctx, wo))

	err := suite.db.Delete(&workorderrepo.WorkOrderDTO{}, "id = ?", wo.ID().Bytes()).Error
	suite.Require().NoError(err)

	_, err = suite.repository.Get(ctx, wo.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) createCustomer() workorder.Customer {
	customer, err := workorder.NewCustomer(
		"Akech Deng", "akech@example.com", "+211912000000", "SS", "Juba")
	suite.Require().NoError(err)
	return customer
}

func (suite *WorkOrderRepositoryIntegrationTestSuite) createWorkOrder(
	stage workorder.Stage, dueAt *time.Time,
) *workorder.WorkOrder {
	wo, err := workorder.RestoreWorkOrder(
		kernel.NewUUID(), "", suite.createCustomer(), stage, 1, dueAt, nil)
	suite.Require().NoError(err)
	return wo
}

func TestWorkOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(WorkOrderRepositoryIntegrationTestSuite))
}
