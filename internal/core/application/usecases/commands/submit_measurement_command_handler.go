package commands

import (
	"context"
	"log/slog"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/measurement"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/core/ports"
)

// SubmitMeasurementCommandHandler handles measurement submissions. Recording
// the measurement and advancing the order from measurement_pending to
// measurement_submitted happen in one transaction; a resubmission on an order
// past measurement_pending records the new set without touching the stage.
type SubmitMeasurementCommandHandler struct {
	uowFactory UoWFactory
	engine     transitionEngine
	dispatcher dispatcher

	// opsEmail receives the review notification for each submission.
	opsEmail string
}

// NewSubmitMeasurementCommandHandler creates a handler for measurement
// submissions.
func NewSubmitMeasurementCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
	opsEmail string,
) SubmitMeasurementCommandHandler {
	return SubmitMeasurementCommandHandler{
		uowFactory: uowFactory,
		engine:     newTransitionEngine(),
		dispatcher: newDispatcher(notifier, logger),
		opsEmail:   opsEmail,
	}
}

// Handle processes the measurement submission command.
func (h *SubmitMeasurementCommandHandler) Handle(ctx context.Context, cmd SubmitMeasurementCommand) error {
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

	m, err := measurement.NewMeasurement(
		cmd.MeasurementID(), wo.ID(), cmd.Source(), cmd.Payload(), cmd.Photos())
	if err != nil {
		return err
	}

	if err = uow.MeasurementRepository().Add(ctx, m); err != nil {
		return err
	}

	err = appendAudit(ctx, uow, cmd.Actor(), audit.ActionMeasurementCreated, m.ID().String(),
		audit.Diff{
			"workOrderId": wo.ID().String(),
			"source":      m.Source().String(),
		})
	if err != nil {
		return err
	}

	if wo.Stage() == workorder.MeasurementPending {
		if err = h.engine.commitStage(ctx, uow, wo, workorder.MeasurementSubmitted, cmd.Actor()); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.dispatch(ctx, ports.Notification{
		To:       h.opsEmail,
		Subject:  "Measurements submitted for review",
		Template: ports.TemplateMeasurementSubmitted,
		Data: map[string]any{
			"workOrderId":  wo.ID().String(),
			"customerName": wo.Customer().Name(),
			"source":       m.Source().String(),
		},
	})
	return nil
}
