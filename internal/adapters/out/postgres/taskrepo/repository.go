package taskrepo

import (
	"context"
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTaskRepository implements TaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTaskRepository creates a new GORM task repository.
func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new task to the database.
func (r *GormTaskRepository) Add(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an existing task.
func (r *GormTaskRepository) Update(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"title":                 dto.Title,
			"status":                dto.Status,
			"assignee_id":           dto.AssigneeID,
			"due_at":                dto.DueAt,
			"started_at":            dto.StartedAt,
			"finished_at":           dto.FinishedAt,
			"reminder_sent":         dto.ReminderSent,
			"overdue_reminder_sent": dto.OverdueReminderSent,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("task", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a task by ID.
func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByWorkOrder retrieves all tasks of a work order, oldest first. The task
// gate evaluates this set when a transition into QC is requested.
func (r *GormTaskRepository) GetByWorkOrder(
	ctx context.Context,
	workOrderID kernel.UUID,
) ([]*task.Task, error) {
	if err := workOrderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "work_order_id = ?", workOrderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetDueForReminder retrieves open tasks due between now and until whose
// due-soon reminder has not been sent yet.
func (r *GormTaskRepository) GetDueForReminder(
	ctx context.Context,
	now, until time.Time,
) ([]*task.Task, error) {
	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Order("due_at").
		Find(&dtos,
			"status IN ? AND due_at >= ? AND due_at <= ? AND reminder_sent = FALSE",
			openStatuses(), now, until,
		).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetOverdueForReminder retrieves open tasks past due whose overdue reminder
// has not been sent yet.
func (r *GormTaskRepository) GetOverdueForReminder(
	ctx context.Context,
	now time.Time,
) ([]*task.Task, error) {
	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Order("due_at").
		Find(&dtos,
			"status IN ? AND due_at < ? AND overdue_reminder_sent = FALSE",
			openStatuses(), now,
		).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func openStatuses() []string {
	return []string{task.StatusPending.String(), task.StatusInProgress.String()}
}

func toDomainSlice(dtos []TaskDTO) ([]*task.Task, error) {
	tasks := make([]*task.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
