// Package auditrepo persists the append-only audit trail. Append is the only
// write: there is no update, no delete, and no mapping back to the domain
// entity. Reads go through the audit trail query handler.
package auditrepo

import (
	"time"

	"atelier/internal/adapters/out/postgres/pgtypes"
	"atelier/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// AuditRecordDTO represents the database structure for persisting audit
// records.
type AuditRecordDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ActorID   *uuid.UUID    `gorm:"type:uuid"`
	Action    string        `gorm:"index"`
	Target    string        `gorm:"index"`
	Diff      pgtypes.JSONB `gorm:"type:jsonb"`
	CreatedAt time.Time     `gorm:"index"`
}

// TableName specifies the database table name for audit records.
func (AuditRecordDTO) TableName() string {
	return "audit_records"
}

// fromDomain converts an audit record to its database representation.
func fromDomain(record *audit.Record) AuditRecordDTO {
	var actorID *uuid.UUID
	if id := record.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return AuditRecordDTO{
		ID:      record.ID().Bytes(),
		ActorID: actorID,
		Action:  string(record.Action()),
		Target:  record.Target(),
		Diff:    pgtypes.JSONB(record.Diff()),
	}
}
