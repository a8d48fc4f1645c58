package commands

import (
	"context"
	"log/slog"

	"atelier/internal/core/ports"
)

// RequestTransitionCommandHandler handles explicit stage change requests: the
// approval steps, the production kickoff, blocking and resuming, fitting
// decisions and completion. QC adjudication and shipment booking have their
// own commands because they write more than the stage.
type RequestTransitionCommandHandler struct {
	uowFactory UoWFactory
	engine     transitionEngine
	dispatcher dispatcher
}

// NewRequestTransitionCommandHandler creates a handler for stage change
// requests.
func NewRequestTransitionCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
		engine:     newTransitionEngine(),
		dispatcher: newDispatcher(notifier, logger),
	}
}

// Handle processes the transition request.
func (h *RequestTransitionCommandHandler) Handle(ctx context.Context, cmd RequestTransitionCommand) error {
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

	if err = h.engine.commitStage(ctx, uow, wo, cmd.TargetStage(), cmd.Actor()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if n, ok := stageNotification(wo, cmd.TargetStage()); ok {
		h.dispatcher.dispatch(ctx, n)
	}
	return nil
}
