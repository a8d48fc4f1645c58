package commands

import (
	"context"
	"log/slog"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/shipment"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// BookShipmentCommandHandler handles carrier bookings. The work order must be
// at ready_to_ship; the carrier call happens before any write so a failed
// booking leaves no trace. On success the shipment record, the move to
// in_transit and the audit records commit together.
type BookShipmentCommandHandler struct {
	uowFactory UoWFactory
	carrier    ports.CarrierClient
	engine     transitionEngine
	dispatcher dispatcher

	// carrierName labels shipments with the integration that booked them.
	carrierName string
}

// NewBookShipmentCommandHandler creates a handler for shipment bookings.
func NewBookShipmentCommandHandler(
	uowFactory UoWFactory,
	carrier ports.CarrierClient,
	notifier ports.Notifier,
	logger *slog.Logger,
	carrierName string,
) BookShipmentCommandHandler {
	return BookShipmentCommandHandler{
		uowFactory:  uowFactory,
		carrier:     carrier,
		engine:      newTransitionEngine(),
		dispatcher:  newDispatcher(notifier, logger),
		carrierName: carrierName,
	}
}

// Handle processes the shipment booking command.
func (h *BookShipmentCommandHandler) Handle(ctx context.Context, cmd BookShipmentCommand) error {
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

	if wo.Stage() != workorder.ReadyToShip {
		return errs.NewPreconditionFailedError("book_shipment",
			"work order must be in stage ready_to_ship, is "+wo.Stage().String())
	}

	booking, err := h.carrier.CreateShipment(ctx, h.shipmentDetails(cmd, wo))
	if err != nil {
		return err
	}

	s, err := shipment.NewShipment(
		cmd.ShipmentID(), wo.ID(), h.carrierName, booking.Waybill, booking.LabelURL, booking.Cost)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	err = appendAudit(ctx, uow, cmd.Actor(), audit.ActionShipmentCreated, s.ID().String(),
		audit.Diff{
			"workOrderId": wo.ID().String(),
			"courier":     s.Courier(),
			"waybill":     s.Waybill(),
		})
	if err != nil {
		return err
	}

	if err = h.engine.commitStage(ctx, uow, wo, workorder.InTransit, cmd.Actor()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.dispatch(ctx, ports.Notification{
		To:       wo.Customer().Email(),
		Subject:  "Your suit has shipped",
		Template: ports.TemplateShipmentCreated,
		Data: map[string]any{
			"workOrderId":  wo.ID().String(),
			"customerName": wo.Customer().Name(),
			"waybill":      s.Waybill(),
			"courier":      s.Courier(),
		},
	})
	return nil
}

// shipmentDetails fills empty recipient fields from the customer's contact
// details.
func (h *BookShipmentCommandHandler) shipmentDetails(
	cmd BookShipmentCommand,
	wo *workorder.WorkOrder,
) ports.CarrierShipmentDetails {
	customer := wo.Customer()
	details := ports.CarrierShipmentDetails{
		RecipientName:    cmd.RecipientName(),
		RecipientAddress: cmd.RecipientAddress(),
		RecipientCity:    cmd.RecipientCity(),
		RecipientCountry: cmd.RecipientCountry(),
		RecipientPhone:   cmd.RecipientPhone(),
		WeightKg:         cmd.WeightKg(),
		Description:      cmd.Description(),
	}

	if details.RecipientName == "" {
		details.RecipientName = customer.Name()
	}
	if details.RecipientCity == "" {
		details.RecipientCity = customer.City()
	}
	if details.RecipientCountry == "" {
		details.RecipientCountry = customer.Country()
	}
	if details.RecipientPhone == "" {
		details.RecipientPhone = customer.Phone()
	}
	return details
}
