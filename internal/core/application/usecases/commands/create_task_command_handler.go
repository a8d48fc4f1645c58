package commands

import (
	"context"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/task"
)

// CreateTaskCommandHandler handles manual task creation. The work order is
// loaded first so tasks cannot be attached to unknown orders.
type CreateTaskCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateTaskCommandHandler creates a handler for task creation.
func NewCreateTaskCommandHandler(uowFactory UoWFactory) CreateTaskCommandHandler {
	return CreateTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the task creation command.
func (h *CreateTaskCommandHandler) Handle(ctx context.Context, cmd CreateTaskCommand) error {
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

	wo, err := uow.WorkOrderRepository().Get(ctx, cmd.WorkOrderID())
	if err != nil {
		return err
	}

	t, err := task.NewTask(
		cmd.TaskID(), wo.ID(), cmd.TaskType(), cmd.Title(), cmd.AssigneeID(), cmd.DueAt())
	if err != nil {
		return err
	}

	if err = uow.TaskRepository().Add(ctx, t); err != nil {
		return err
	}

	err = appendAudit(ctx, uow, cmd.Actor(), audit.ActionTaskCreated, t.ID().String(),
		audit.Diff{
			"workOrderId": wo.ID().String(),
			"type":        t.Type().String(),
			"title":       t.Title(),
		})
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
