package commands

import (
	"context"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/workorder"
)

// CreateWorkOrderCommandHandler handles in-house work order registration.
// The new order is persisted at measurement_pending together with its
// work_order_created audit record.
type CreateWorkOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateWorkOrderCommandHandler creates a handler for work order
// registration.
func NewCreateWorkOrderCommandHandler(uowFactory UoWFactory) CreateWorkOrderCommandHandler {
	return CreateWorkOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the work order creation command.
func (h *CreateWorkOrderCommandHandler) Handle(ctx context.Context, cmd CreateWorkOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	wo, err := workorder.NewWorkOrder(cmd.WorkOrderID(), cmd.Customer(), cmd.Priority(), cmd.DueAt())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WorkOrderRepository().Add(ctx, wo); err != nil {
		return err
	}

	err = appendAudit(ctx, uow, cmd.Actor(), audit.ActionWorkOrderCreated, wo.ID().String(),
		audit.Diff{
			"customerEmail": wo.Customer().Email(),
			"stage":         wo.Stage().String(),
			"priority":      wo.Priority(),
		})
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
