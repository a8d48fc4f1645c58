package commands

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/pkg/guard"
)

var ErrCreateTaskCommandIsNotConstructed = errors.New(
	"CreateTaskCommand must be created via NewCreateTaskCommand constructor",
)

// CreateTaskCommand represents a request to add a production task to a work
// order beyond the seeded defaults.
type CreateTaskCommand struct { //nolint:recvcheck //using for validation
	taskID      kernel.UUID
	workOrderID kernel.UUID
	taskType    task.Type
	title       string
	assigneeID  *kernel.UUID
	dueAt       *time.Time
	actor       Actor

	guard guard.ConstructorGuard
}

// NewCreateTaskCommand creates a command to add a task. An empty title
// defaults to the type's standard title.
func NewCreateTaskCommand(
	taskID kernel.UUID,
	workOrderID kernel.UUID,
	taskType task.Type,
	title string,
	assigneeID *kernel.UUID,
	dueAt *time.Time,
	actor Actor,
) (CreateTaskCommand, error) {
	cmd := CreateTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setWorkOrderID(workOrderID),
		taskType.Validate(),
		cmd.setActor(actor),
	); err != nil {
		return CreateTaskCommand{}, err
	}

	if assigneeID != nil {
		if err := assigneeID.Validate(); err != nil {
			return CreateTaskCommand{}, err
		}
		cmd.assigneeID = assigneeID
	}

	cmd.taskType = taskType
	cmd.title = title
	cmd.dueAt = dueAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTaskCommand) Validate() error {
	return c.guard.Validate(ErrCreateTaskCommandIsNotConstructed)
}

// TaskID returns the identifier the new task will carry.
func (c CreateTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// WorkOrderID returns the owning work order.
func (c CreateTaskCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// TaskType returns the task type.
func (c CreateTaskCommand) TaskType() task.Type {
	return c.taskType
}

// Title returns the title override, "" for the type default.
func (c CreateTaskCommand) Title() string {
	return c.title
}

// AssigneeID returns the initial assignee, nil if unassigned.
func (c CreateTaskCommand) AssigneeID() *kernel.UUID {
	return c.assigneeID
}

// DueAt returns the optional deadline.
func (c CreateTaskCommand) DueAt() *time.Time {
	return c.dueAt
}

// Actor returns the requesting principal.
func (c CreateTaskCommand) Actor() Actor {
	return c.actor
}

func (c *CreateTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *CreateTaskCommand) setWorkOrderID(workOrderID kernel.UUID) error {
	if err := workOrderID.Validate(); err != nil {
		return err
	}

	c.workOrderID = workOrderID
	return nil
}

func (c *CreateTaskCommand) setActor(actor Actor) error {
	if !actor.IsValid() {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
