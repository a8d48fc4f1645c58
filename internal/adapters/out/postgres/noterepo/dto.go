// Package noterepo provides data transfer objects and mapping functions for
// note persistence. Notes are create-only.
package noterepo

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/note"

	"github.com/google/uuid"
)

// NoteDTO represents the database structure for persisting notes. A NULL
// author marks a system-generated note.
type NoteDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WorkOrderID uuid.UUID  `gorm:"type:uuid;index"`
	AuthorID    *uuid.UUID `gorm:"type:uuid"`
	Visibility  string
	Body        string
	CreatedAt   time.Time
}

// TableName specifies the database table name for note entities.
func (NoteDTO) TableName() string {
	return "notes"
}

// fromDomain converts a note domain entity to its database representation.
func fromDomain(n *note.Note) NoteDTO {
	var authorID *uuid.UUID
	if id := n.AuthorID(); id != nil {
		raw := id.Bytes()
		authorID = &raw
	}

	return NoteDTO{
		ID:          n.ID().Bytes(),
		WorkOrderID: n.WorkOrderID().Bytes(),
		AuthorID:    authorID,
		Visibility:  n.Visibility().String(),
		Body:        n.Body(),
	}
}

// toDomain converts a database DTO to a note domain entity.
func toDomain(dto NoteDTO) (*note.Note, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	workOrderID, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}

	visibility, err := note.VisibilityFromString(dto.Visibility)
	if err != nil {
		return nil, err
	}

	var authorID *kernel.UUID
	if dto.AuthorID != nil {
		aID, authorErr := kernel.UUIDFromBytes((*dto.AuthorID)[:])
		if authorErr != nil {
			return nil, authorErr
		}
		authorID = &aID
	}

	return note.RestoreNote(id, workOrderID, authorID, visibility, dto.Body)
}
