package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/guard"
)

var ErrGetWorkOrderQueryIsNotConstructed = errors.New(
	"GetWorkOrderQuery must be created via NewGetWorkOrderQuery constructor",
)

// GetWorkOrderQuery retrieves one work order with its task list. This is the
// detail view the operations dashboard renders.
type GetWorkOrderQuery struct {
	workOrderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWorkOrderQuery creates a query for one work order.
func NewGetWorkOrderQuery(workOrderID kernel.UUID) (GetWorkOrderQuery, error) {
	if err := workOrderID.Validate(); err != nil {
		return GetWorkOrderQuery{}, err
	}

	return GetWorkOrderQuery{
		workOrderID: workOrderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWorkOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderQueryIsNotConstructed)
}

// WorkOrderID returns the requested work order.
func (q GetWorkOrderQuery) WorkOrderID() kernel.UUID {
	return q.workOrderID
}

// GetWorkOrderQueryResponse is the detail view of one work order.
type GetWorkOrderQueryResponse struct {
	ID               kernel.UUID
	ExternalOrderID  string
	CustomerName     string
	CustomerEmail    string
	Stage            string
	Priority         int
	DueAt            *time.Time
	AssignedTailorID *kernel.UUID
	Tasks            []WorkOrderTaskResponse
}

// WorkOrderTaskResponse is one task row of the detail view.
type WorkOrderTaskResponse struct {
	ID     kernel.UUID
	Type   string
	Title  string
	Status string
	DueAt  *time.Time
}
