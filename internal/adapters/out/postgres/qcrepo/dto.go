// Package qcrepo provides data transfer objects and mapping functions for
// inspection result persistence. Results are create-only.
package qcrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/qc"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// checkpointResults stores the per-checkpoint outcomes as one jsonb array.
type checkpointResults []qc.CheckpointResult

// Value implements driver.Valuer.
func (c checkpointResults) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *checkpointResults) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported checkpoint results source type %T", value)
	}
}

// QCResultDTO represents the database structure for persisting inspection
// results.
type QCResultDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;index"`
	FormID      string
	FormName    string
	InspectorID uuid.UUID         `gorm:"type:uuid"`
	Results     checkpointResults `gorm:"type:jsonb"`
	Pass        bool
	Photos      pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for inspection result entities.
func (QCResultDTO) TableName() string {
	return "qc_results"
}

// fromDomain converts an inspection result domain entity to its database
// representation.
func fromDomain(r *qc.QCResult) QCResultDTO {
	return QCResultDTO{
		ID:          r.ID().Bytes(),
		WorkOrderID: r.WorkOrderID().Bytes(),
		FormID:      r.FormID(),
		FormName:    r.FormName(),
		InspectorID: r.InspectorID().Bytes(),
		Results:     r.Results(),
		Pass:        r.Pass(),
		Photos:      r.Photos(),
	}
}

// toDomain converts a database DTO to an inspection result domain entity.
func toDomain(dto QCResultDTO) (*qc.QCResult, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	workOrderID, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}

	inspectorID, err := kernel.UUIDFromBytes(dto.InspectorID[:])
	if err != nil {
		return nil, err
	}

	return qc.RestoreQCResult(
		id, workOrderID, dto.FormID, dto.FormName, inspectorID,
		dto.Results, dto.Pass, dto.Photos,
	)
}
