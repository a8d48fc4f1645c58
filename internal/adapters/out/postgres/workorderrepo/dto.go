// Package workorderrepo provides data transfer objects and mapping functions
// for work order persistence. Work orders are the only soft-deleted entity:
// deleting one hides it from every read while its tasks, measurements and
// audit records stay put.
package workorderrepo

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkOrderDTO represents the database structure for persisting work order
// aggregates. CurrentStage is stored as its snake_case name so the adjacency
// table in the domain stays the single source of stage knowledge.
type WorkOrderDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ExternalOrderID  *string     `gorm:"uniqueIndex"`
	Customer         CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	CurrentStage     string      `gorm:"index"`
	Priority         int
	DueAt            *time.Time
	AssignedTailorID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for work order entities.
func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

// CustomerDTO represents the embedded customer contact details within the
// work order table.
type CustomerDTO struct {
	Name    string
	Email   string
	Phone   string
	Country string
	City    string
}

// fromDomain converts a work order domain aggregate to its database
// representation. An empty external order reference maps to NULL so the
// unique index only applies to ingested orders.
func fromDomain(wo *workorder.WorkOrder) WorkOrderDTO {
	var externalOrderID *string
	if ref := wo.ExternalOrderID(); ref != "" {
		externalOrderID = &ref
	}

	var assignedTailorID *uuid.UUID
	if id := wo.AssignedTailorID(); id != nil {
		raw := id.Bytes()
		assignedTailorID = &raw
	}

	return WorkOrderDTO{
		ID:              wo.ID().Bytes(),
		ExternalOrderID: externalOrderID,
		Customer: CustomerDTO{
			Name:    wo.Customer().Name(),
			Email:   wo.Customer().Email(),
			Phone:   wo.Customer().Phone(),
			Country: wo.Customer().Country(),
			City:    wo.Customer().City(),
		},
		CurrentStage:     wo.Stage().String(),
		Priority:         wo.Priority(),
		DueAt:            wo.DueAt(),
		AssignedTailorID: assignedTailorID,
	}
}

// toDomain converts a database DTO to a work order domain aggregate.
func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stage, err := workorder.StageFromString(dto.CurrentStage)
	if err != nil {
		return nil, err
	}

	customer, err := workorder.NewCustomer(
		dto.Customer.Name,
		dto.Customer.Email,
		dto.Customer.Phone,
		dto.Customer.Country,
		dto.Customer.City,
	)
	if err != nil {
		return nil, err
	}

	externalOrderID := ""
	if dto.ExternalOrderID != nil {
		externalOrderID = *dto.ExternalOrderID
	}

	var assignedTailorID *kernel.UUID
	if dto.AssignedTailorID != nil {
		tailorID, tailorErr := kernel.UUIDFromBytes((*dto.AssignedTailorID)[:])
		if tailorErr != nil {
			return nil, tailorErr
		}
		assignedTailorID = &tailorID
	}

	return workorder.RestoreWorkOrder(
		id, externalOrderID, customer, stage, dto.Priority, dto.DueAt, assignedTailorID)
}
