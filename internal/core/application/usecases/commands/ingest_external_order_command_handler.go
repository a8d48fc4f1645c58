package commands

import (
	"context"
	"errors"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/pkg/errs"
)

// IngestExternalOrderCommandHandler handles sales-channel order ingestion.
// It creates the work order at intake_pending, seeds the default task set
// from the order's line items and advances the order to measurement_pending,
// all in one transaction. A redelivered external order id is a no-op.
type IngestExternalOrderCommandHandler struct {
	uowFactory UoWFactory
	engine     transitionEngine
}

// NewIngestExternalOrderCommandHandler creates a handler for external order
// ingestion.
func NewIngestExternalOrderCommandHandler(uowFactory UoWFactory) IngestExternalOrderCommandHandler {
	return IngestExternalOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     newTransitionEngine(),
	}
}

// Handle processes the ingestion command.
func (h *IngestExternalOrderCommandHandler) Handle(ctx context.Context, cmd IngestExternalOrderCommand) error {
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

	_, err := uow.WorkOrderRepository().GetByExternalOrderID(ctx, cmd.ExternalOrderID())
	if err == nil {
		// Channel redelivery; the order already exists.
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	wo, err := workorder.NewExternalWorkOrder(
		cmd.WorkOrderID(), cmd.ExternalOrderID(), cmd.Customer(), cmd.Priority())
	if err != nil {
		return err
	}

	if err = uow.WorkOrderRepository().Add(ctx, wo); err != nil {
		return err
	}

	seeded, err := h.seedTasks(ctx, uow, wo.ID(), cmd.LineItems())
	if err != nil {
		return err
	}

	err = appendAudit(ctx, uow, SystemActor(), audit.ActionWorkOrderCreated, wo.ID().String(),
		audit.Diff{
			"externalOrderId": cmd.ExternalOrderID(),
			"stage":           wo.Stage().String(),
			"seededTasks":     seeded,
		})
	if err != nil {
		return err
	}

	if err = h.engine.commitStage(ctx, uow, wo, workorder.MeasurementPending, SystemActor()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// seedTasks creates the default task set the purchased garments call for and
// returns the seeded task titles.
func (h *IngestExternalOrderCommandHandler) seedTasks(
	ctx context.Context,
	uow UoW,
	workOrderID kernel.UUID,
	lineItems []string,
) ([]string, error) {
	var titles []string
	for _, item := range lineItems {
		for _, taskType := range task.TypesForLineItem(item) {
			t, err := task.NewTask(kernel.NewUUID(), workOrderID, taskType, "", nil, nil)
			if err != nil {
				return nil, err
			}
			if err = uow.TaskRepository().Add(ctx, t); err != nil {
				return nil, err
			}
			titles = append(titles, t.Title())
		}
	}
	return titles, nil
}
