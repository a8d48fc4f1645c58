package commands

import (
	"context"
	"log/slog"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/core/ports"
)

// dueSoonWindow is how far ahead the sweep looks for upcoming deadlines.
const dueSoonWindow = 24 * time.Hour

// SendTaskRemindersCommandHandler runs the periodic due-date sweep. Reminder
// flags are committed before any notification goes out, so a crashed sweep
// can at worst under-notify, never double-notify.
type SendTaskRemindersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher dispatcher

	opsEmail string

	// now is injectable for tests.
	now func() time.Time
}

// NewSendTaskRemindersCommandHandler creates a handler for the reminder
// sweep.
func NewSendTaskRemindersCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
	opsEmail string,
) SendTaskRemindersCommandHandler {
	return SendTaskRemindersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: newDispatcher(notifier, logger),
		opsEmail:   opsEmail,
		now:        time.Now,
	}
}

// Handle processes one reminder sweep.
func (h *SendTaskRemindersCommandHandler) Handle(ctx context.Context, cmd SendTaskRemindersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.now()

	dueSoon, err := uow.TaskRepository().GetDueForReminder(ctx, now, now.Add(dueSoonWindow))
	if err != nil {
		return err
	}
	overdue, err := uow.TaskRepository().GetOverdueForReminder(ctx, now)
	if err != nil {
		return err
	}

	var pending []ports.Notification

	for _, t := range dueSoon {
		t.MarkReminderSent()
		if err = h.flagTask(ctx, uow, t, "reminderSent"); err != nil {
			return err
		}
		pending = append(pending, h.reminder(t, ports.TemplateTaskDueSoon, "Task due soon"))
	}

	for _, t := range overdue {
		t.MarkOverdueReminderSent()
		if err = h.flagTask(ctx, uow, t, "overdueReminderSent"); err != nil {
			return err
		}
		pending = append(pending, h.reminder(t, ports.TemplateTaskOverdue, "Task overdue"))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, n := range pending {
		h.dispatcher.dispatch(ctx, n)
	}
	return nil
}

func (h *SendTaskRemindersCommandHandler) flagTask(
	ctx context.Context,
	uow UoW,
	t *task.Task,
	flag string,
) error {
	if err := uow.TaskRepository().Update(ctx, t); err != nil {
		return err
	}
	return appendAudit(ctx, uow, SystemActor(), audit.ActionTaskUpdated, t.ID().String(),
		audit.Diff{
			"workOrderId": t.WorkOrderID().String(),
			flag:          true,
		})
}

func (h *SendTaskRemindersCommandHandler) reminder(
	t *task.Task,
	template ports.Template,
	subject string,
) ports.Notification {
	data := map[string]any{
		"taskId":      t.ID().String(),
		"workOrderId": t.WorkOrderID().String(),
		"title":       t.Title(),
	}
	if t.DueAt() != nil {
		data["dueAt"] = t.DueAt().Format(time.RFC3339)
	}
	if t.AssigneeID() != nil {
		data["assigneeId"] = t.AssigneeID().String()
	}

	return ports.Notification{
		To:       h.opsEmail,
		Subject:  subject,
		Template: template,
		Data:     data,
	}
}
