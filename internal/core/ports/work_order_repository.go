package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"
)

// WorkOrderRepository defines the persistence contract for work order
// aggregates. Soft-deleted orders are invisible to every method here.
type WorkOrderRepository interface {
	// Add persists a new work order aggregate.
	Add(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Update persists changes to an existing work order except its stage.
	// Stage changes go through CommitStage so the optimistic check is never
	// bypassed.
	Update(ctx context.Context, aggregate *workorder.WorkOrder) error

	// CommitStage persists the aggregate's current stage with an optimistic
	// predicate on expected: the write only applies while the stored stage
	// still equals expected. Returns StageConflictError when a concurrent
	// transition committed first.
	CommitStage(ctx context.Context, aggregate *workorder.WorkOrder, expected workorder.Stage) error

	// Get retrieves a work order by its unique identifier.
	// Returns ObjectNotFoundError for unknown or soft-deleted orders.
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// GetByExternalOrderID retrieves a work order by its sales-channel
	// reference, used to deduplicate webhook deliveries.
	GetByExternalOrderID(ctx context.Context, externalOrderID string) (*workorder.WorkOrder, error)
}
