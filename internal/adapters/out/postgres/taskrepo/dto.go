// Package taskrepo provides data transfer objects and mapping functions for
// task persistence. Tasks reference their work order by ID only; soft-deleting
// the order does not cascade here.
package taskrepo

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// TaskDTO represents the database structure for persisting tasks. The two
// reminder flags make the periodic due-date sweep idempotent.
type TaskDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkOrderID         uuid.UUID `gorm:"type:uuid;index"`
	TaskType            string
	Title               string
	Status              string     `gorm:"index"`
	AssigneeID          *uuid.UUID `gorm:"type:uuid;index"`
	DueAt               *time.Time `gorm:"index"`
	StartedAt           *time.Time
	FinishedAt          *time.Time
	ReminderSent        bool
	OverdueReminderSent bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the database table name for task entities.
func (TaskDTO) TableName() string {
	return "tasks"
}

// fromDomain converts a task domain entity to its database representation.
func fromDomain(t *task.Task) TaskDTO {
	var assigneeID *uuid.UUID
	if id := t.AssigneeID(); id != nil {
		raw := id.Bytes()
		assigneeID = &raw
	}

	return TaskDTO{
		ID:                  t.ID().Bytes(),
		WorkOrderID:         t.WorkOrderID().Bytes(),
		TaskType:            t.Type().String(),
		Title:               t.Title(),
		Status:              t.Status().String(),
		AssigneeID:          assigneeID,
		DueAt:               t.DueAt(),
		StartedAt:           t.StartedAt(),
		FinishedAt:          t.FinishedAt(),
		ReminderSent:        t.ReminderSent(),
		OverdueReminderSent: t.OverdueReminderSent(),
	}
}

// toDomain converts a database DTO to a task domain entity.
func toDomain(dto TaskDTO) (*task.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	workOrderID, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}

	taskType, err := task.TypeFromString(dto.TaskType)
	if err != nil {
		return nil, err
	}

	status, err := task.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var assigneeID *kernel.UUID
	if dto.AssigneeID != nil {
		aID, assigneeErr := kernel.UUIDFromBytes((*dto.AssigneeID)[:])
		if assigneeErr != nil {
			return nil, assigneeErr
		}
		assigneeID = &aID
	}

	return task.RestoreTask(
		id, workOrderID, taskType, dto.Title, status, assigneeID,
		dto.DueAt, dto.StartedAt, dto.FinishedAt,
		dto.ReminderSent, dto.OverdueReminderSent,
	)
}
