package services

import (
	"fmt"

	"atelier/internal/core/domain/model/task"
)

// TaskGate is the domain service that decides whether a work order's task set
// satisfies the precondition for entering quality control.
//
// Business rules:
//   - A task blocks the gate while its status is pending or in_progress and
//     its type is not rework
//   - Rework tasks never block the gate: they exist because QC already failed,
//     and holding them against re-entry would deadlock the rework loop. They
//     still count as ordinary work everywhere else, so they must reach
//     completed before the gate opens on the next attempt only through their
//     own status, not through their type
//   - The predicate is evaluated uniformly on every entry to QC, including
//     re-checks after rework
//
// Example usage:
//
//	gate := services.NewTaskGate()
//	tasks, _ := uow.TaskRepository().GetByWorkOrder(ctx, workOrderID)
//	if open := gate.OutstandingTasks(tasks); len(open) > 0 {
//	    // refuse the transition with a guard failure
//	}
type TaskGate struct{}

// NewTaskGate creates a new TaskGate instance.
func NewTaskGate() TaskGate {
	return TaskGate{}
}

// IsProductionComplete reports whether no non-rework task remains open.
func (g TaskGate) IsProductionComplete(tasks []*task.Task) bool {
	return len(g.OutstandingTasks(tasks)) == 0
}

// OutstandingTasks returns the tasks currently holding the gate closed.
func (g TaskGate) OutstandingTasks(tasks []*task.Task) []*task.Task {
	var outstanding []*task.Task
	for _, t := range tasks {
		if t.CountsAgainstGate() {
			outstanding = append(outstanding, t)
		}
	}
	return outstanding
}

// Reason formats the human-readable guard refusal for a closed gate.
func (g TaskGate) Reason(outstanding int) string {
	if outstanding == 1 {
		return "1 task incomplete"
	}
	return fmt.Sprintf("%d tasks incomplete", outstanding)
}
