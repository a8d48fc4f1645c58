// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. The tracking history column only ever grows.
package shipmentrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// trackingHistory stores the append-only tracking events as one jsonb array.
type trackingHistory []shipment.TrackingEvent

// Value implements driver.Valuer.
func (h trackingHistory) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal([]shipment.TrackingEvent{})
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner.
func (h *trackingHistory) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("unsupported tracking history source type %T", value)
	}
}

// ShipmentDTO represents the database structure for persisting shipments. The
// waybill is unique: it is how carrier webhooks identify the shipment.
type ShipmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkOrderID     uuid.UUID `gorm:"type:uuid;index"`
	Courier         string
	Waybill         string `gorm:"uniqueIndex"`
	Status          string
	TrackingHistory trackingHistory `gorm:"type:jsonb"`
	Cost            float64
	LabelURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain entity to its database
// representation.
func fromDomain(s *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:              s.ID().Bytes(),
		WorkOrderID:     s.WorkOrderID().Bytes(),
		Courier:         s.Courier(),
		Waybill:         s.Waybill(),
		Status:          s.Status().String(),
		TrackingHistory: s.TrackingHistory(),
		Cost:            s.Cost(),
		LabelURL:        s.LabelURL(),
	}
}

// toDomain converts a database DTO to a shipment domain entity.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	workOrderID, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id, workOrderID, dto.Courier, dto.Waybill, dto.LabelURL,
		status, dto.TrackingHistory, dto.Cost,
	)
}
