// Package task provides the Task entity and its status/type enums. Tasks
// belong to exactly one work order; the work order owns its tasks but
// soft-deleting the order does not cascade to them.
package task

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// ErrTaskIsNotConstructed is returned when a Task instance was not created
// through NewTask, NewReworkTask or RestoreTask.
var ErrTaskIsNotConstructed = errors.New(
	"Task must be created via NewTask, NewReworkTask or RestoreTask")

// Task is one unit of production work on a work order.
//
// startedAt and finishedAt are stamped exactly once, when the status first
// reaches in_progress and completed respectively. The reminder flags make the
// periodic due-date sweep idempotent.
type Task struct {
	id          kernel.UUID
	workOrderID kernel.UUID
	taskType    Type
	title       string
	status      Status
	assigneeID  *kernel.UUID
	dueAt       *time.Time
	startedAt   *time.Time
	finishedAt  *time.Time

	reminderSent        bool
	overdueReminderSent bool

	isConstructed bool
}

// NewTask creates a pending task of the given type on a work order.
func NewTask(
	id kernel.UUID,
	workOrderID kernel.UUID,
	taskType Type,
	title string,
	assigneeID *kernel.UUID,
	dueAt *time.Time,
) (*Task, error) {
	t := &Task{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setWorkOrderID(workOrderID),
		t.setType(taskType),
	); err != nil {
		return nil, err
	}

	if assigneeID != nil {
		if err := assigneeID.Validate(); err != nil {
			return nil, err
		}
		t.assigneeID = assigneeID
	}

	if title == "" {
		title = taskType.Title()
	}
	t.title = title
	t.dueAt = dueAt
	return t, nil
}

// NewReworkTask creates the pending rework task a failed inspection attaches
// to a work order.
func NewReworkTask(id kernel.UUID, workOrderID kernel.UUID) (*Task, error) {
	return NewTask(id, workOrderID, TypeRework, "", nil, nil)
}

// RestoreTask reconstructs a task from persistence.
func RestoreTask(
	id kernel.UUID,
	workOrderID kernel.UUID,
	taskType Type,
	title string,
	status Status,
	assigneeID *kernel.UUID,
	dueAt, startedAt, finishedAt *time.Time,
	reminderSent, overdueReminderSent bool,
) (*Task, error) {
	t := &Task{isConstructed: true}

	if err := errors.Join(
		t.setID(id),
		t.setWorkOrderID(workOrderID),
		t.setType(taskType),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if assigneeID != nil {
		if err := assigneeID.Validate(); err != nil {
			return nil, err
		}
		t.assigneeID = assigneeID
	}

	t.title = title
	t.status = status
	t.dueAt = dueAt
	t.startedAt = startedAt
	t.finishedAt = finishedAt
	t.reminderSent = reminderSent
	t.overdueReminderSent = overdueReminderSent
	return t, nil
}

// Validate ensures the Task instance was properly constructed.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// ID returns the task's unique identifier.
func (t *Task) ID() kernel.UUID { return t.id }

// WorkOrderID returns the owning work order.
func (t *Task) WorkOrderID() kernel.UUID { return t.workOrderID }

// Type returns the task type.
func (t *Task) Type() Type { return t.taskType }

// Title returns the human-readable title.
func (t *Task) Title() string { return t.title }

// Status returns the current status.
func (t *Task) Status() Status { return t.status }

// AssigneeID returns the assigned tailor, nil if unassigned.
func (t *Task) AssigneeID() *kernel.UUID { return t.assigneeID }

// DueAt returns the optional deadline.
func (t *Task) DueAt() *time.Time { return t.dueAt }

// StartedAt returns when the task first entered in_progress.
func (t *Task) StartedAt() *time.Time { return t.startedAt }

// FinishedAt returns when the task first entered completed.
func (t *Task) FinishedAt() *time.Time { return t.finishedAt }

// ReminderSent reports whether the due-soon reminder went out.
func (t *Task) ReminderSent() bool { return t.reminderSent }

// OverdueReminderSent reports whether the overdue reminder went out.
func (t *Task) OverdueReminderSent() bool { return t.overdueReminderSent }

// CountsAgainstGate reports whether this task blocks entry to QC: open work
// of any type except rework.
func (t *Task) CountsAgainstGate() bool {
	return t.status.IsOpen() && t.taskType != TypeRework
}

// ChangeStatus moves the task to a new status, stamping startedAt/finishedAt
// exactly once on the first entry to in_progress/completed. Changing a
// cancelled task is rejected.
func (t *Task) ChangeStatus(to Status, now time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if t.status == StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("taskStatus",
			errors.New("cancelled tasks cannot change status"))
	}

	if to == StatusInProgress && t.startedAt == nil {
		t.startedAt = &now
	}
	if to == StatusCompleted && t.finishedAt == nil {
		t.finishedAt = &now
	}

	t.status = to
	return nil
}

// Assign assigns the task to a tailor.
func (t *Task) Assign(assigneeID kernel.UUID) error {
	if err := assigneeID.Validate(); err != nil {
		return err
	}
	t.assigneeID = &assigneeID
	return nil
}

// MarkReminderSent records that the due-soon reminder went out, so repeated
// sweeps do not double-notify.
func (t *Task) MarkReminderSent() { t.reminderSent = true }

// MarkOverdueReminderSent records that the overdue reminder went out.
func (t *Task) MarkOverdueReminderSent() { t.overdueReminderSent = true }

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setWorkOrderID(workOrderID kernel.UUID) error {
	if err := workOrderID.Validate(); err != nil {
		return err
	}
	t.workOrderID = workOrderID
	return nil
}

func (t *Task) setType(taskType Type) error {
	if err := taskType.Validate(); err != nil {
		return err
	}
	t.taskType = taskType
	return nil
}
