package commands_test

import (
	"context"
	"testing"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/measurement"
	"atelier/internal/core/domain/model/note"
	"atelier/internal/core/domain/model/qc"
	"atelier/internal/core/domain/model/shipment"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCustomer(t *testing.T) workorder.Customer {
	t.Helper()
	customer, err := workorder.NewCustomer(
		"Akech Deng", "akech@example.com", "+211912000000", "SS", "Juba")
	require.NoError(t, err)
	return customer
}

func testWorkOrder(t *testing.T, stage workorder.Stage) *workorder.WorkOrder {
	t.Helper()
	wo, err := workorder.RestoreWorkOrder(
		kernel.NewUUID(), "", testCustomer(t), stage, 1, nil, nil)
	require.NoError(t, err)
	return wo
}

func testTime(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-03-01T10:00:00Z")
	require.NoError(t, err)
	return ts
}

func testActor(t *testing.T) commands.Actor {
	t.Helper()
	actor, err := commands.NewActor(kernel.NewUUID())
	require.NoError(t, err)
	return actor
}

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) Add(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}
func (m *MockWorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}
func (m *MockWorkOrderRepository) CommitStage(
	ctx context.Context, wo *workorder.WorkOrder, expected workorder.Stage,
) error {
	args := m.Called(ctx, wo, expected)
	return args.Error(0)
}
func (m *MockWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}
func (m *MockWorkOrderRepository) GetByExternalOrderID(
	ctx context.Context, externalOrderID string,
) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, externalOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}
func (m *MockTaskRepository) GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, workOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}
func (m *MockTaskRepository) GetDueForReminder(ctx context.Context, now, until time.Time) ([]*task.Task, error) {
	args := m.Called(ctx, now, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}
func (m *MockTaskRepository) GetOverdueForReminder(ctx context.Context, now time.Time) ([]*task.Task, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

type MockMeasurementRepository struct{ mock.Mock }

func (m *MockMeasurementRepository) Add(ctx context.Context, mt *measurement.Measurement) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}
func (m *MockMeasurementRepository) GetByWorkOrder(
	ctx context.Context, workOrderID kernel.UUID,
) ([]*measurement.Measurement, error) {
	args := m.Called(ctx, workOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*measurement.Measurement), args.Error(1)
}

type MockQCResultRepository struct{ mock.Mock }

func (m *MockQCResultRepository) Add(ctx context.Context, r *qc.QCResult) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockQCResultRepository) GetByWorkOrder(
	ctx context.Context, workOrderID kernel.UUID,
) ([]*qc.QCResult, error) {
	args := m.Called(ctx, workOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*qc.QCResult), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipmentRepository) GetByWaybill(ctx context.Context, waybill string) (*shipment.Shipment, error) {
	args := m.Called(ctx, waybill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetByWorkOrder(
	ctx context.Context, workOrderID kernel.UUID,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, workOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockNoteRepository struct{ mock.Mock }

func (m *MockNoteRepository) Add(ctx context.Context, n *note.Note) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNoteRepository) GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*note.Note, error) {
	args := m.Called(ctx, workOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*note.Note), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, r *audit.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) WorkOrderRepository() ports.WorkOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkOrderRepository)
}
func (m *MockUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}
func (m *MockUoW) MeasurementRepository() ports.MeasurementRepository {
	args := m.Called()
	return args.Get(0).(ports.MeasurementRepository)
}
func (m *MockUoW) QCResultRepository() ports.QCResultRepository {
	args := m.Called()
	return args.Get(0).(ports.QCResultRepository)
}
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}
func (m *MockUoW) NoteRepository() ports.NoteRepository {
	args := m.Called()
	return args.Get(0).(ports.NoteRepository)
}
func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockCarrierClient struct{ mock.Mock }

func (m *MockCarrierClient) CreateShipment(
	ctx context.Context, details ports.CarrierShipmentDetails,
) (ports.CarrierBooking, error) {
	args := m.Called(ctx, details)
	return args.Get(0).(ports.CarrierBooking), args.Error(1)
}
