package workorderrepo

import (
	"context"
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkOrderRepository implements WorkOrderRepository using GORM.
type GormWorkOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkOrderRepository creates a new GORM work order repository.
func NewGormWorkOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new work order to the database.
func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
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

// Update saves changes to an existing work order, excluding its stage. Stage
// changes go through CommitStage only.
func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&WorkOrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"customer_name":      dto.Customer.Name,
			"customer_email":     dto.Customer.Email,
			"customer_phone":     dto.Customer.Phone,
			"customer_country":   dto.Customer.Country,
			"customer_city":      dto.Customer.City,
			"priority":           dto.Priority,
			"due_at":             dto.DueAt,
			"assigned_tailor_id": dto.AssignedTailorID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("work_order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// CommitStage persists the aggregate's current stage with an optimistic
// predicate: the write only applies while the stored stage still equals
// expected. Zero affected rows means a concurrent transition won the race.
func (r *GormWorkOrderRepository) CommitStage(
	ctx context.Context,
	aggregate *workorder.WorkOrder,
	expected workorder.Stage,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&WorkOrderDTO{}).
		Where("id = ? AND current_stage = ?", aggregate.ID().Bytes(), expected.String()).
		Update("current_stage", aggregate.Stage().String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStageConflictError(aggregate.ID().String(), expected.String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a work order by ID. Soft-deleted orders are not found.
func (r *GormWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work_order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByExternalOrderID retrieves a work order by its sales-channel reference.
func (r *GormWorkOrderRepository) GetByExternalOrderID(
	ctx context.Context,
	externalOrderID string,
) (*workorder.WorkOrder, error) {
	if externalOrderID == "" {
		return nil, errs.NewValueIsRequiredError("externalOrderID")
	}

	var dto WorkOrderDTO
	err := r.db.WithContext(ctx).First(&dto, "external_order_id = ?", externalOrderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work_order", externalOrderID)
		}
		return nil, err
	}

	return toDomain(dto)
}
