package commands_test

import (
	"errors"
	"testing"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateWorkOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateWorkOrderCommand(id, testCustomer(t), 2, nil, testActor(t))
	require.NoError(t, err)

	woRepo := new(MockWorkOrderRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkOrderRepository").Return(woRepo)
	uow.On("AuditRepository").Return(auditRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	woRepo.On("Add", mock.Anything, mock.MatchedBy(func(wo *workorder.WorkOrder) bool {
		return wo.Stage() == workorder.MeasurementPending && wo.Priority() == 2
	})).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *audit.Record) bool {
		return r.Action() == audit.ActionWorkOrderCreated && r.Target() == id.String()
	})).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateWorkOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	woRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateWorkOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateWorkOrderCommand(
		kernel.NewUUID(), testCustomer(t), 0, nil, testActor(t))
	require.NoError(t, err)

	woRepo := new(MockWorkOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkOrderRepository").Return(woRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	woRepo.On("Add", mock.Anything, mock.Anything).Return(errors.New("add error")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateWorkOrderCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}

func TestCreateWorkOrderCommand_Validation(t *testing.T) {
	t.Run("requires customer", func(t *testing.T) {
		_, err := commands.NewCreateWorkOrderCommand(
			kernel.NewUUID(), workorder.Customer{}, 0, nil, testActor(t))
		require.ErrorIs(t, err, commands.ErrCustomerIsRequired)
	})

	t.Run("requires actor", func(t *testing.T) {
		_, err := commands.NewCreateWorkOrderCommand(
			kernel.NewUUID(), testCustomer(t), 0, nil, commands.Actor{})
		require.ErrorIs(t, err, commands.ErrActorIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		cmd := commands.CreateWorkOrderCommand{}
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateWorkOrderCommandIsNotConstructed)
	})
}
