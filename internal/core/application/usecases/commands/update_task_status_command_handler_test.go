package commands_test

import (
	"testing"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateTaskStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tk, err := task.NewTask(
		kernel.NewUUID(), kernel.NewUUID(), task.TypeSewingCoat, "", nil, nil)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateTaskStatusCommand(
		tk.ID(), task.StatusInProgress, nil, testActor(t))
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("AuditRepository").Return(auditRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	taskRepo.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
	taskRepo.On("Update", mock.Anything, tk).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTaskStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, task.StatusInProgress, tk.Status())
	require.NotNil(t, tk.StartedAt())
	uow.AssertExpectations(t)
}

func TestUpdateTaskStatusCommandHandler_Handle_UnknownTask(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateTaskStatusCommand(
		id, task.StatusCompleted, nil, testActor(t))
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	taskRepo.On("Get", mock.Anything, id).
		Return(nil, errs.NewObjectNotFoundError("taskID", id)).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTaskStatusCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
}
