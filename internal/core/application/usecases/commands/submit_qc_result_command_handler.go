package commands

import (
	"context"
	"fmt"
	"log/slog"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/note"
	"atelier/internal/core/domain/model/qc"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/core/ports"
)

// SubmitQCResultCommandHandler adjudicates inspection outcomes. A pass moves
// the order to ready_to_ship. A fail attaches a rework task and an internal
// note and moves the order back to in_production. Result, rework artifacts,
// stage change and both audit records commit in one transaction.
//
// Adjudication is a one-shot side effect of recording the result; the stored
// QCResult itself never changes afterwards.
type SubmitQCResultCommandHandler struct {
	uowFactory UoWFactory
	engine     transitionEngine
	dispatcher dispatcher

	opsEmail string
}

// NewSubmitQCResultCommandHandler creates a handler for inspection
// submissions.
func NewSubmitQCResultCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
	opsEmail string,
) SubmitQCResultCommandHandler {
	return SubmitQCResultCommandHandler{
		uowFactory: uowFactory,
		engine:     newTransitionEngine(),
		dispatcher: newDispatcher(notifier, logger),
		opsEmail:   opsEmail,
	}
}

// Handle processes the inspection submission command.
func (h *SubmitQCResultCommandHandler) Handle(ctx context.Context, cmd SubmitQCResultCommand) error {
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

	result, err := qc.NewQCResult(
		cmd.QCResultID(), wo.ID(), cmd.FormID(), cmd.FormName(),
		*cmd.Actor().ID(), cmd.Results(), cmd.Pass(), cmd.Photos())
	if err != nil {
		return err
	}

	if err = uow.QCResultRepository().Add(ctx, result); err != nil {
		return err
	}

	diff := audit.Diff{
		"workOrderId": wo.ID().String(),
		"formId":      result.FormID(),
		"pass":        result.Pass(),
	}

	if result.Pass() {
		if err = h.engine.commitStage(ctx, uow, wo, workorder.ReadyToShip, cmd.Actor()); err != nil {
			return err
		}
	} else {
		reworkTaskID, reworkErr := h.attachRework(ctx, uow, wo.ID(), result.FormName())
		if reworkErr != nil {
			return reworkErr
		}
		diff["reworkTaskId"] = reworkTaskID.String()

		if err = h.engine.commitStage(ctx, uow, wo, workorder.InProduction, cmd.Actor()); err != nil {
			return err
		}
	}

	err = appendAudit(ctx, uow, cmd.Actor(), audit.ActionQCResultCreated, result.ID().String(), diff)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyVerdict(ctx, wo, result)
	return nil
}

// attachRework creates the rework task and the internal note a failed
// inspection leaves on the order.
func (h *SubmitQCResultCommandHandler) attachRework(
	ctx context.Context,
	uow UoW,
	workOrderID kernel.UUID,
	formName string,
) (kernel.UUID, error) {
	reworkTask, err := task.NewReworkTask(kernel.NewUUID(), workOrderID)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.TaskRepository().Add(ctx, reworkTask); err != nil {
		return kernel.UUID{}, err
	}

	reworkNote, err := note.NewNote(kernel.NewUUID(), workOrderID, nil, note.VisibilityInternal,
		fmt.Sprintf("QC Failed: %s. Rework task created.", formName))
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.NoteRepository().Add(ctx, reworkNote); err != nil {
		return kernel.UUID{}, err
	}

	return reworkTask.ID(), nil
}

func (h *SubmitQCResultCommandHandler) notifyVerdict(
	ctx context.Context,
	wo *workorder.WorkOrder,
	result *qc.QCResult,
) {
	template := ports.TemplateQCPassed
	subject := "QC passed"
	if !result.Pass() {
		template = ports.TemplateQCFailed
		subject = "QC failed, rework required"
	}

	h.dispatcher.dispatch(ctx, ports.Notification{
		To:       h.opsEmail,
		Subject:  subject,
		Template: template,
		Data: map[string]any{
			"workOrderId":  wo.ID().String(),
			"customerName": wo.Customer().Name(),
			"formName":     result.FormName(),
			"pass":         result.Pass(),
		},
	})
}
