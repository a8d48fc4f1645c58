package noterepo

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/note"

	"gorm.io/gorm"
)

// GormNoteRepository implements NoteRepository using GORM.
type GormNoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNoteRepository creates a new GORM note repository.
func NewGormNoteRepository(db *gorm.DB, tracker aggregateTracker) *GormNoteRepository {
	return &GormNoteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new note to the database.
func (r *GormNoteRepository) Add(ctx context.Context, aggregate *note.Note) error {
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

// GetByWorkOrder retrieves all notes of a work order, oldest first.
func (r *GormNoteRepository) GetByWorkOrder(
	ctx context.Context,
	workOrderID kernel.UUID,
) ([]*note.Note, error) {
	if err := workOrderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NoteDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "work_order_id = ?", workOrderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*note.Note, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, nil
}
