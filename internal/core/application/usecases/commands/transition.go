package commands

import (
	"context"
	"log/slog"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// GuardReasonTasksIncomplete is the machine-readable reason code carried by a
// guard refusal when open production tasks hold the QC gate closed.
const GuardReasonTasksIncomplete = "tasks_incomplete"

// transitionEngine is the single code path every stage change takes,
// regardless of which command requested it. It checks the adjacency table,
// evaluates edge guards, commits the new stage with an optimistic predicate
// on the prior one, and appends the transition's audit record in the same
// transaction.
//
// Ordering matters for the error taxonomy: an unrecognized edge is an
// InvalidTransitionError before any guard runs, so callers can distinguish
// "never allowed" from "not allowed right now".
type transitionEngine struct {
	gate services.TaskGate
}

func newTransitionEngine() transitionEngine {
	return transitionEngine{gate: services.NewTaskGate()}
}

// commitStage moves wo along (current stage → to) inside the ambient
// transaction of uow. The caller has already called Begin and is responsible
// for Commit/Rollback; this keeps multi-write operations (QC adjudication,
// shipment booking) atomic with their stage change.
func (e transitionEngine) commitStage(
	ctx context.Context,
	uow UoW,
	wo *workorder.WorkOrder,
	to workorder.Stage,
	actor Actor,
) error {
	if err := wo.Validate(); err != nil {
		return err
	}

	from := wo.Stage()
	if !from.CanTransitionTo(to) {
		return errs.NewInvalidTransitionError(from.String(), to.String())
	}

	if to == workorder.InQC {
		tasks, err := uow.TaskRepository().GetByWorkOrder(ctx, wo.ID())
		if err != nil {
			return err
		}
		if outstanding := e.gate.OutstandingTasks(tasks); len(outstanding) > 0 {
			return errs.NewGuardFailedError(from.String(), to.String(),
				GuardReasonTasksIncomplete, e.gate.Reason(len(outstanding)))
		}
	}

	if err := wo.ChangeStage(to); err != nil {
		return err
	}

	if err := uow.WorkOrderRepository().CommitStage(ctx, wo, from); err != nil {
		return err
	}

	return appendAudit(ctx, uow, actor, audit.ActionWorkOrderUpdated, wo.ID().String(),
		audit.Diff{"from": from.String(), "to": to.String()})
}

// appendAudit writes one audit record through the ambient transaction.
func appendAudit(
	ctx context.Context,
	uow UoW,
	actor Actor,
	action audit.Action,
	target string,
	diff audit.Diff,
) error {
	record, err := audit.NewRecord(kernel.NewUUID(), actor.ID(), action, target, diff)
	if err != nil {
		return err
	}
	return uow.AuditRepository().Append(ctx, record)
}

// dispatcher sends post-commit notifications. Dispatch failures are logged
// and swallowed: by the time a notification goes out the business operation
// has already committed, so the channel must never fail it retroactively.
type dispatcher struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

func newDispatcher(notifier ports.Notifier, logger *slog.Logger) dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return dispatcher{notifier: notifier, logger: logger}
}

func (d dispatcher) dispatch(ctx context.Context, n ports.Notification) {
	if d.notifier == nil {
		return
	}
	if err := d.notifier.Send(ctx, n); err != nil {
		d.logger.Warn("notification dispatch failed",
			"template", string(n.Template),
			"to", n.To,
			"error", err)
	}
}

// stageNotification maps entry into customer-visible stages to the
// notification that announces it. Stages without a template produce no
// notification; the transition itself still succeeds and is audited.
func stageNotification(wo *workorder.WorkOrder, to workorder.Stage) (ports.Notification, bool) {
	data := map[string]any{
		"workOrderId":  wo.ID().String(),
		"customerName": wo.Customer().Name(),
	}

	switch to {
	case workorder.MeasurementApproved:
		return ports.Notification{
			To:       wo.Customer().Email(),
			Subject:  "Your measurements have been approved",
			Template: ports.TemplateMeasurementApproved,
			Data:     data,
		}, true
	case workorder.InProduction:
		return ports.Notification{
			To:       wo.Customer().Email(),
			Subject:  "Your suit is now in production",
			Template: ports.TemplateProductionStarted,
			Data:     data,
		}, true
	case workorder.ReadyForPickup:
		return ports.Notification{
			To:       wo.Customer().Email(),
			Subject:  "Your suit is ready for pickup",
			Template: ports.TemplateReadyForPickup,
			Data:     data,
		}, true
	default:
		return ports.Notification{}, false
	}
}
