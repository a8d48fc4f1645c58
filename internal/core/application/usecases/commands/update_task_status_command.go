package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/pkg/guard"
)

var ErrUpdateTaskStatusCommandIsNotConstructed = errors.New(
	"UpdateTaskStatusCommand must be created via NewUpdateTaskStatusCommand constructor",
)

// UpdateTaskStatusCommand represents a request to move a production task to a
// new status, optionally reassigning it at the same time.
type UpdateTaskStatusCommand struct { //nolint:recvcheck //using for validation
	taskID     kernel.UUID
	status     task.Status
	assigneeID *kernel.UUID
	actor      Actor

	guard guard.ConstructorGuard
}

// NewUpdateTaskStatusCommand creates a command to update a task's status.
// assigneeID is optional; when set the task is reassigned.
func NewUpdateTaskStatusCommand(
	taskID kernel.UUID,
	status task.Status,
	assigneeID *kernel.UUID,
	actor Actor,
) (UpdateTaskStatusCommand, error) {
	cmd := UpdateTaskStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		status.Validate(),
		cmd.setActor(actor),
	); err != nil {
		return UpdateTaskStatusCommand{}, err
	}

	if assigneeID != nil {
		if err := assigneeID.Validate(); err != nil {
			return UpdateTaskStatusCommand{}, err
		}
		cmd.assigneeID = assigneeID
	}

	cmd.status = status
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTaskStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTaskStatusCommandIsNotConstructed)
}

// TaskID returns the task to update.
func (c UpdateTaskStatusCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Status returns the requested status.
func (c UpdateTaskStatusCommand) Status() task.Status {
	return c.status
}

// AssigneeID returns the new assignee, nil to leave assignment unchanged.
func (c UpdateTaskStatusCommand) AssigneeID() *kernel.UUID {
	return c.assigneeID
}

// Actor returns the requesting principal.
func (c UpdateTaskStatusCommand) Actor() Actor {
	return c.actor
}

func (c *UpdateTaskStatusCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *UpdateTaskStatusCommand) setActor(actor Actor) error {
	if !actor.IsValid() {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
