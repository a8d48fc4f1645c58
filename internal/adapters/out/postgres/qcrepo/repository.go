package qcrepo

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/qc"

	"gorm.io/gorm"
)

// GormQCResultRepository implements QCResultRepository using GORM.
type GormQCResultRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormQCResultRepository creates a new GORM inspection result repository.
func NewGormQCResultRepository(db *gorm.DB, tracker aggregateTracker) *GormQCResultRepository {
	return &GormQCResultRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new inspection result to the database.
func (r *GormQCResultRepository) Add(ctx context.Context, aggregate *qc.QCResult) error {
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

// GetByWorkOrder retrieves all inspection results of a work order, newest
// first.
func (r *GormQCResultRepository) GetByWorkOrder(
	ctx context.Context,
	workOrderID kernel.UUID,
) ([]*qc.QCResult, error) {
	if err := workOrderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []QCResultDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "work_order_id = ?", workOrderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	results := make([]*qc.QCResult, 0, len(dtos))
	for _, dto := range dtos {
		result, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}
