package postgres_test

import (
	"context"
	"testing"
	"time"

	"atelier/internal/adapters/out/postgres"
	"atelier/internal/adapters/out/postgres/auditrepo"
	"atelier/internal/adapters/out/postgres/measurementrepo"
	"atelier/internal/adapters/out/postgres/noterepo"
	"atelier/internal/adapters/out/postgres/qcrepo"
	"atelier/internal/adapters/out/postgres/shipmentrepo"
	"atelier/internal/adapters/out/postgres/taskrepo"
	"atelier/internal/adapters/out/postgres/workorderrepo"
	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the transaction boundary the
// transition engine relies on: a stage commit and its audit record are
// written atomically.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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
		&workorderrepo.WorkOrderDTO{},
		&taskrepo.TaskDTO{},
		&measurementrepo.MeasurementDTO{},
		&qcrepo.QCResultDTO{},
		&shipmentrepo.ShipmentDTO{},
		&noterepo.NoteDTO{},
		&auditrepo.AuditRecordDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE work_orders, tasks, measurements, qc_results, shipments, notes, audit_records").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_StageChangeAndAuditRecordPersistTogether() {
	ctx := context.Background()

	wo := suite.createWorkOrder(workorder.MeasurementPending)
	suite.addWorkOrder(ctx, wo)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	from := wo.Stage()
	suite.Require().NoError(wo.ChangeStage(workorder.MeasurementSubmitted))
	suite.Require().NoError(uow.WorkOrderRepository().CommitStage(ctx, wo, from))

	record, err := audit.NewRecord(
		kernel.NewUUID(), nil, audit.ActionWorkOrderUpdated, wo.ID().String(),
		audit.Diff{"from": from.String(), "to": wo.Stage().String()})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditRepository().Append(ctx, record))

	suite.Require().NoError(uow.Commit(ctx))

	retrieved, err := suite.factory.Create().WorkOrderRepository().Get(ctx, wo.ID())
	suite.Require().NoError(err)
	suite.Equal(workorder.MeasurementSubmitted, retrieved.Stage())
	suite.Equal(int64(1), suite.countAuditRecords())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsStageChangeAndAuditRecord() {
	ctx := context.Background()

	wo := suite.createWorkOrder(workorder.MeasurementPending)
	suite.addWorkOrder(ctx, wo)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	from := wo.Stage()
	suite.Require().NoError(wo.ChangeStage(workorder.MeasurementSubmitted))
	suite.Require().NoError(uow.WorkOrderRepository().CommitStage(ctx, wo, from))

	record, err := audit.NewRecord(
		kernel.NewUUID(), nil, audit.ActionWorkOrderUpdated, wo.ID().String(),
		audit.Diff{"from": from.String(), "to": wo.Stage().String()})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditRepository().Append(ctx, record))

	suite.Require().NoError(uow.Rollback(ctx))

	retrieved, err := suite.factory.Create().WorkOrderRepository().Get(ctx, wo.ID())
	suite.Require().NoError(err)
	suite.Equal(workorder.MeasurementPending, retrieved.Stage())
	suite.Equal(int64(0), suite.countAuditRecords())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitStage_ConcurrentTransition_LoserGetsConflict() {
	ctx := context.Background()

	wo := suite.createWorkOrder(workorder.InQC)
	suite.addWorkOrder(ctx, wo)

	// Winner commits in_qc -> ready_to_ship outside the loser's transaction.
	winner := suite.factory.Create()
	suite.Require().NoError(winner.Begin(ctx))
	winnerWO, err := winner.WorkOrderRepository().Get(ctx, wo.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(winnerWO.ChangeStage(workorder.ReadyToShip))
	suite.Require().NoError(winner.WorkOrderRepository().CommitStage(ctx, winnerWO, workorder.InQC))
	suite.Require().NoError(winner.Commit(ctx))

	loser := suite.factory.Create()
	suite.Require().NoError(loser.Begin(ctx))
	suite.Require().NoError(wo.ChangeStage(workorder.InProduction))
	err = loser.WorkOrderRepository().CommitStage(ctx, wo, workorder.InQC)
	suite.Require().ErrorIs(err, errs.ErrStageConflict)
	suite.Require().NoError(loser.Rollback(ctx))

	retrieved, err := suite.factory.Create().WorkOrderRepository().Get(ctx, wo.ID())
	suite.Require().NoError(err)
	suite.Equal(workorder.ReadyToShip, retrieved.Stage())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_IsIdempotent() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) createWorkOrder(stage workorder.Stage) *workorder.WorkOrder {
	customer, err := workorder.NewCustomer(
		"Akech Deng", "akech@example.com", "+211912000000", "SS", "Juba")
	suite.Require().NoError(err)

	wo, err := workorder.RestoreWorkOrder(
		kernel.NewUUID(), "", customer, stage, 1, nil, nil)
	suite.Require().NoError(err)
	return wo
}

func (suite *UnitOfWorkIntegrationTestSuite) addWorkOrder(ctx context.Context, wo *workorder.WorkOrder) {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.WorkOrderRepository().Add(ctx, wo))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) countAuditRecords() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&auditrepo.AuditRecordDTO{}).Count(&count).Error)
	return count
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
