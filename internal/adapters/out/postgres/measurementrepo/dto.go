// Package measurementrepo provides data transfer objects and mapping
// functions for measurement persistence. Measurements are create-only; a new
// submission supersedes prior rows without touching them.
package measurementrepo

import (
	"time"

	"atelier/internal/adapters/out/postgres/pgtypes"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/measurement"
	"atelier/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MeasurementDTO represents the database structure for persisting
// measurements. The payload is stored as jsonb so new measurement points do
// not require schema changes.
type MeasurementDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;index"`
	Source      string
	Payload     pgtypes.JSONB  `gorm:"type:jsonb"`
	Photos      pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for measurement entities.
func (MeasurementDTO) TableName() string {
	return "measurements"
}

// fromDomain converts a measurement domain entity to its database
// representation.
func fromDomain(m *measurement.Measurement) MeasurementDTO {
	payload := m.Payload()
	raw := make(pgtypes.JSONB, len(payload))
	for point, value := range payload {
		raw[point] = value
	}

	return MeasurementDTO{
		ID:          m.ID().Bytes(),
		WorkOrderID: m.WorkOrderID().Bytes(),
		Source:      m.Source().String(),
		Payload:     raw,
		Photos:      m.Photos(),
	}
}

// toDomain converts a database DTO to a measurement domain entity.
func toDomain(dto MeasurementDTO) (*measurement.Measurement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	workOrderID, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}

	source, err := measurement.SourceFromString(dto.Source)
	if err != nil {
		return nil, err
	}

	payload := make(map[string]float64, len(dto.Payload))
	for point, raw := range dto.Payload {
		value, ok := raw.(float64)
		if !ok {
			return nil, errs.NewValueIsInvalidError("payload." + point)
		}
		payload[point] = value
	}

	return measurement.RestoreMeasurement(id, workOrderID, source, payload, dto.Photos)
}
