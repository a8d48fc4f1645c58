package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repositories bound to the transaction.
// Client code must explicitly manage transaction lifecycle.
//
// The engine relies on this boundary for its core invariant: a stage commit
// and its audit record are written in the same transaction, so both happen or
// neither does. Notification dispatch stays outside the boundary.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// WorkOrderRepository returns a WorkOrderRepository bound to the current transaction.
	WorkOrderRepository() WorkOrderRepository

	// TaskRepository returns a TaskRepository bound to the current transaction.
	TaskRepository() TaskRepository

	// MeasurementRepository returns a MeasurementRepository bound to the current transaction.
	MeasurementRepository() MeasurementRepository

	// QCResultRepository returns a QCResultRepository bound to the current transaction.
	QCResultRepository() QCResultRepository

	// ShipmentRepository returns a ShipmentRepository bound to the current transaction.
	ShipmentRepository() ShipmentRepository

	// NoteRepository returns a NoteRepository bound to the current transaction.
	NoteRepository() NoteRepository

	// AuditRepository returns an AuditRepository bound to the current transaction.
	AuditRepository() AuditRepository
}
