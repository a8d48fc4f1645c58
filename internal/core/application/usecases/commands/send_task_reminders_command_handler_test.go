package commands_test

import (
	"testing"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dueTask(t *testing.T, dueAt time.Time) *task.Task {
	t.Helper()
	tk, err := task.NewTask(
		kernel.NewUUID(), kernel.NewUUID(), task.TypeCutting, "", nil, &dueAt)
	require.NoError(t, err)
	return tk
}

func TestSendTaskRemindersCommandHandler_Handle_FlagsAndNotifies(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSendTaskRemindersCommand()

	now := testTime(t)
	soon := dueTask(t, now.Add(6*time.Hour))
	late := dueTask(t, now.Add(-2*time.Hour))

	taskRepo := new(MockTaskRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("AuditRepository").Return(auditRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	taskRepo.On("GetDueForReminder", mock.Anything, mock.Anything, mock.Anything).
		Return([]*task.Task{soon}, nil).Once()
	taskRepo.On("GetOverdueForReminder", mock.Anything, mock.Anything).
		Return([]*task.Task{late}, nil).Once()
	taskRepo.On("Update", mock.Anything, soon).Return(nil).Once()
	taskRepo.On("Update", mock.Anything, late).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Twice()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	var templates []ports.Template
	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			templates = append(templates, args.Get(1).(ports.Notification).Template)
		}).Return(nil).Twice()

	h := commands.NewSendTaskRemindersCommandHandler(factory, notifier, nil, "ops@example.com")
	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, soon.ReminderSent())
	require.True(t, late.OverdueReminderSent())
	require.ElementsMatch(t,
		[]ports.Template{ports.TemplateTaskDueSoon, ports.TemplateTaskOverdue}, templates)
	taskRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSendTaskRemindersCommandHandler_Handle_NothingDue(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSendTaskRemindersCommand()

	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	taskRepo.On("GetDueForReminder", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()
	taskRepo.On("GetOverdueForReminder", mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewSendTaskRemindersCommandHandler(factory, notifier, nil, "ops@example.com")
	require.NoError(t, h.Handle(ctx, cmd))
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
