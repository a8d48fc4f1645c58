package commands

import (
	"context"
	"log/slog"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/shipment"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/core/ports"
)

// ApplyCarrierUpdateCommandHandler handles carrier webhook tracking updates.
// The update is appended to the shipment's tracking history; the first
// delivered update additionally moves the order from in_transit to
// at_destination_tailor and notifies the customer.
type ApplyCarrierUpdateCommandHandler struct {
	uowFactory UoWFactory
	engine     transitionEngine
	dispatcher dispatcher
}

// NewApplyCarrierUpdateCommandHandler creates a handler for carrier tracking
// updates.
func NewApplyCarrierUpdateCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ApplyCarrierUpdateCommandHandler {
	return ApplyCarrierUpdateCommandHandler{
		uowFactory: uowFactory,
		engine:     newTransitionEngine(),
		dispatcher: newDispatcher(notifier, logger),
	}
}

// Handle processes the carrier tracking update.
func (h *ApplyCarrierUpdateCommandHandler) Handle(ctx context.Context, cmd ApplyCarrierUpdateCommand) error {
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

	s, err := uow.ShipmentRepository().GetByWaybill(ctx, cmd.Waybill())
	if err != nil {
		return err
	}

	status := shipment.MapCarrierUpdate(cmd.UpdateCode(), cmd.StatusText())
	firstDelivery := status == shipment.StatusDelivered && !s.IsDelivered()

	err = s.ApplyTrackingUpdate(status, shipment.TrackingEvent{
		Timestamp: cmd.OccurredAt(),
		Status:    status.String(),
		Location:  cmd.Location(),
	})
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return err
	}

	err = appendAudit(ctx, uow, SystemActor(), audit.ActionShipmentUpdated, s.ID().String(),
		audit.Diff{
			"waybill":    s.Waybill(),
			"status":     status.String(),
			"updateCode": cmd.UpdateCode(),
		})
	if err != nil {
		return err
	}

	var delivered *workorder.WorkOrder
	if firstDelivery {
		wo, woErr := uow.WorkOrderRepository().Get(ctx, s.WorkOrderID())
		if woErr != nil {
			return woErr
		}

		// The order may already have been moved by hand; only the in_transit
		// edge is taken automatically.
		if wo.Stage() == workorder.InTransit {
			if err = h.engine.commitStage(ctx, uow, wo, workorder.AtDestinationTailor, SystemActor()); err != nil {
				return err
			}
		}
		delivered = wo
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if delivered != nil {
		h.dispatcher.dispatch(ctx, ports.Notification{
			To:       delivered.Customer().Email(),
			Subject:  "Your suit has arrived",
			Template: ports.TemplateOrderDelivered,
			Data: map[string]any{
				"workOrderId":  delivered.ID().String(),
				"customerName": delivered.Customer().Name(),
				"waybill":      s.Waybill(),
			},
		})
	}
	return nil
}
