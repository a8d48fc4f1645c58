package commands

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/audit"
)

// UpdateTaskStatusCommandHandler handles task status changes. The first move
// to in_progress stamps startedAt, the first move to completed stamps
// finishedAt; both happen inside the task entity.
type UpdateTaskStatusCommandHandler struct {
	uowFactory UoWFactory

	// now is injectable for tests.
	now func() time.Time
}

// NewUpdateTaskStatusCommandHandler creates a handler for task status
// updates.
func NewUpdateTaskStatusCommandHandler(uowFactory UoWFactory) UpdateTaskStatusCommandHandler {
	return UpdateTaskStatusCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the task status update command.
func (h *UpdateTaskStatusCommandHandler) Handle(ctx context.Context, cmd UpdateTaskStatusCommand) error {
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

	t, err := uow.TaskRepository().Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	previous := t.Status()
	if err = t.ChangeStatus(cmd.Status(), h.now()); err != nil {
		return err
	}

	if cmd.AssigneeID() != nil {
		if err = t.Assign(*cmd.AssigneeID()); err != nil {
			return err
		}
	}

	if err = uow.TaskRepository().Update(ctx, t); err != nil {
		return err
	}

	err = appendAudit(ctx, uow, cmd.Actor(), audit.ActionTaskUpdated, t.ID().String(),
		audit.Diff{
			"workOrderId": t.WorkOrderID().String(),
			"from":        previous.String(),
			"to":          t.Status().String(),
		})
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
