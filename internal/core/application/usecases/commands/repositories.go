// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// guarded stage commit, and audit append.
//
// Every mutation entry point funnels through the stage transition engine in
// transition.go: guards are evaluated against the adjacency table, the new
// stage and its audit record are committed in one transaction, and
// notifications are dispatched best-effort after the commit.
package commands

import (
	"context"

	"atelier/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// WorkOrderRepoFactory provides access to the work order repository within a transaction.
	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	// TaskRepoFactory provides access to the task repository within a transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// MeasurementRepoFactory provides access to the measurement repository within a transaction.
	MeasurementRepoFactory interface {
		MeasurementRepository() ports.MeasurementRepository
	}

	// QCResultRepoFactory provides access to the QC result repository within a transaction.
	QCResultRepoFactory interface {
		QCResultRepository() ports.QCResultRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// NoteRepoFactory provides access to the note repository within a transaction.
	NoteRepoFactory interface {
		NoteRepository() ports.NoteRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// UoW manages transactions across every aggregate the engine touches.
	// The transition engine needs all of them in one boundary: a QC failure,
	// for example, writes a task, a note, a stage change and two audit
	// records atomically.
	UoW interface {
		TxManager
		WorkOrderRepoFactory
		TaskRepoFactory
		MeasurementRepoFactory
		QCResultRepoFactory
		ShipmentRepoFactory
		NoteRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
