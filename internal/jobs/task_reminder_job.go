package jobs

import (
	"context"
	"log/slog"

	"atelier/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TaskReminderJob runs the scheduled reminder sweep over open tasks. One
// sweep sends due-soon reminders for tasks entering the reminder window and
// overdue reminders for tasks past their due date, each at most once.
type TaskReminderJob struct {
	handler  commands.SendTaskRemindersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTaskReminderJob creates the reminder sweep job. schedule is a standard
// five-field cron expression.
func NewTaskReminderJob(
	handler commands.SendTaskRemindersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *TaskReminderJob {
	return &TaskReminderJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "task_reminder_job"),
	}
}

// Start schedules the reminder sweep.
func (j *TaskReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSendTaskRemindersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Task reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Task reminder job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reminder sweep.
func (j *TaskReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Task reminder job stopped")
}
