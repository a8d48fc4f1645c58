package commands_test

import (
	"testing"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/measurement"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPayload() map[string]float64 {
	return map[string]float64{"chest": 102.5, "waist": 88, "sleeve": 64}
}

func TestSubmitMeasurementCommandHandler_Handle_AdvancesPendingOrder(t *testing.T) {
	ctx := t.Context()
	wo := testWorkOrder(t, workorder.MeasurementPending)
	cmd, err := commands.NewSubmitMeasurementCommand(
		kernel.NewUUID(), wo.ID(), measurement.SourceNative, testPayload(), nil, testActor(t))
	require.NoError(t, err)

	woRepo := new(MockWorkOrderRepository)
	measurementRepo := new(MockMeasurementRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkOrderRepository").Return(woRepo)
	uow.On("MeasurementRepository").Return(measurementRepo)
	uow.On("AuditRepository").Return(auditRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	woRepo.On("Get", mock.Anything, wo.ID()).Return(wo, nil).Once()
	measurementRepo.On("Add", mock.Anything, mock.AnythingOfType("*measurement.Measurement")).
		Return(nil).Once()
	woRepo.On("CommitStage", mock.Anything, wo, workorder.MeasurementPending).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Twice()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Template == ports.TemplateMeasurementSubmitted && n.To == "ops@example.com"
	})).Return(nil).Once()

	h := commands.NewSubmitMeasurementCommandHandler(factory, notifier, nil, "ops@example.com")
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, workorder.MeasurementSubmitted, wo.Stage())
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitMeasurementCommandHandler_Handle_ResubmissionKeepsStage(t *testing.T) {
	ctx := t.Context()
	wo := testWorkOrder(t, workorder.MeasurementSubmitted)
	cmd, err := commands.NewSubmitMeasurementCommand(
		kernel.NewUUID(), wo.ID(), measurement.SourceExternalForm, testPayload(), nil, testActor(t))
	require.NoError(t, err)

	woRepo := new(MockWorkOrderRepository)
	measurementRepo := new(MockMeasurementRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkOrderRepository").Return(woRepo)
	uow.On("MeasurementRepository").Return(measurementRepo)
	uow.On("AuditRepository").Return(auditRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	woRepo.On("Get", mock.Anything, wo.ID()).Return(wo, nil).Once()
	measurementRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewSubmitMeasurementCommandHandler(factory, notifier, nil, "ops@example.com")
	require.NoError(t, h.Handle(ctx, cmd))
	// A resubmission records the superseding set without a stage change.
	require.Equal(t, workorder.MeasurementSubmitted, wo.Stage())
	woRepo.AssertNotCalled(t, "CommitStage", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitMeasurementCommand_RequiresPayload(t *testing.T) {
	_, err := commands.NewSubmitMeasurementCommand(
		kernel.NewUUID(), kernel.NewUUID(), measurement.SourceNative, nil, nil, testActor(t))
	require.ErrorIs(t, err, commands.ErrPayloadIsRequired)
}

func TestSubmitMeasurementCommand_AcceptsSystemActorForFormImports(t *testing.T) {
	// Form provider webhooks submit on behalf of the customer; there is no
	// human principal to attribute.
	cmd, err := commands.NewSubmitMeasurementCommand(
		kernel.NewUUID(), kernel.NewUUID(), measurement.SourceExternalForm,
		map[string]float64{"chest": 102.5}, nil, commands.SystemActor())
	require.NoError(t, err)
	require.Nil(t, cmd.Actor().ID())
	require.Equal(t, measurement.SourceExternalForm, cmd.Source())
}
