package commands

import (
	"errors"

	"atelier/internal/pkg/guard"
)

var ErrSendTaskRemindersCommandIsNotConstructed = errors.New(
	"SendTaskRemindersCommand must be created via NewSendTaskRemindersCommand constructor",
)

// SendTaskRemindersCommand triggers one sweep over open tasks that are due
// soon or overdue. The sweep is idempotent: each task carries flags recording
// which reminders already went out.
//
// Example:
//
//	cmd := NewSendTaskRemindersCommand()
//	handler := NewSendTaskRemindersCommandHandler(uowFactory, notifier, logger, opsEmail)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("reminder sweep failed: %v", err)
//	}
type SendTaskRemindersCommand struct {
	guard guard.ConstructorGuard
}

// NewSendTaskRemindersCommand creates a new command to trigger a reminder
// sweep.
func NewSendTaskRemindersCommand() SendTaskRemindersCommand {
	return SendTaskRemindersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SendTaskRemindersCommand) Validate() error {
	return c.guard.Validate(ErrSendTaskRemindersCommandIsNotConstructed)
}
