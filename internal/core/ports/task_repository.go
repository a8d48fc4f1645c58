package ports

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"
)

// TaskRepository defines the persistence contract for tasks.
type TaskRepository interface {
	// Add persists a new task.
	Add(ctx context.Context, aggregate *task.Task) error

	// Update persists changes to an existing task.
	Update(ctx context.Context, aggregate *task.Task) error

	// Get retrieves a task by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*task.Task, error)

	// GetByWorkOrder retrieves all tasks belonging to a work order, oldest
	// first. The task gate evaluates this set.
	GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*task.Task, error)

	// GetDueForReminder retrieves open tasks due between now and until whose
	// due-soon reminder has not been sent yet.
	GetDueForReminder(ctx context.Context, now, until time.Time) ([]*task.Task, error)

	// GetOverdueForReminder retrieves open tasks past due whose overdue
	// reminder has not been sent yet.
	GetOverdueForReminder(ctx context.Context, now time.Time) ([]*task.Task, error)
}
