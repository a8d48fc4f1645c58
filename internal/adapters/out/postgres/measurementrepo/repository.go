package measurementrepo

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/measurement"

	"gorm.io/gorm"
)

// GormMeasurementRepository implements MeasurementRepository using GORM.
type GormMeasurementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMeasurementRepository creates a new GORM measurement repository.
func NewGormMeasurementRepository(db *gorm.DB, tracker aggregateTracker) *GormMeasurementRepository {
	return &GormMeasurementRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new measurement to the database.
func (r *GormMeasurementRepository) Add(ctx context.Context, aggregate *measurement.Measurement) error {
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

// GetByWorkOrder retrieves all measurements of a work order, newest first, so
// the current set comes before superseded ones.
func (r *GormMeasurementRepository) GetByWorkOrder(
	ctx context.Context,
	workOrderID kernel.UUID,
) ([]*measurement.Measurement, error) {
	if err := workOrderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MeasurementDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "work_order_id = ?", workOrderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	measurements := make([]*measurement.Measurement, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}

	return measurements, nil
}
