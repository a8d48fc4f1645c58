package ports

import (
	"context"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/measurement"
	"atelier/internal/core/domain/model/note"
	"atelier/internal/core/domain/model/qc"
	"atelier/internal/core/domain/model/shipment"
)

// MeasurementRepository defines the persistence contract for measurements.
// Measurements are create-only; there is no update.
type MeasurementRepository interface {
	Add(ctx context.Context, aggregate *measurement.Measurement) error
	GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*measurement.Measurement, error)
}

// QCResultRepository defines the persistence contract for inspection results.
// Results are create-only; adjudication happens once, at creation.
type QCResultRepository interface {
	Add(ctx context.Context, aggregate *qc.QCResult) error
	GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*qc.QCResult, error)
}

// ShipmentRepository defines the persistence contract for shipments.
type ShipmentRepository interface {
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists a tracking update. Tracking history only grows.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// GetByWaybill retrieves a shipment by its carrier tracking identifier;
	// the carrier webhook identifies shipments this way, not by work order.
	GetByWaybill(ctx context.Context, waybill string) (*shipment.Shipment, error)

	GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*shipment.Shipment, error)
}

// NoteRepository defines the persistence contract for notes. Create-only.
type NoteRepository interface {
	Add(ctx context.Context, aggregate *note.Note) error
	GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*note.Note, error)
}

// AuditRepository defines the persistence contract for the append-only audit
// log. Append is the only write; records are never updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, record *audit.Record) error
}
