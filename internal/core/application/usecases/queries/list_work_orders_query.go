package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/pkg/guard"
)

var ErrListWorkOrdersQueryIsNotConstructed = errors.New(
	"ListWorkOrdersQuery must be created via NewListWorkOrdersQuery constructor",
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListWorkOrdersQuery retrieves a page of work orders, optionally filtered by
// stage and assigned tailor. Results are ordered most urgent first.
type ListWorkOrdersQuery struct {
	stage            *workorder.Stage
	assignedTailorID *kernel.UUID
	limit            int
	offset           int

	guard guard.ConstructorGuard
}

// NewListWorkOrdersQuery creates a list query. stage and assignedTailorID are
// optional filters; a non-positive limit falls back to the default page size.
func NewListWorkOrdersQuery(
	stage *workorder.Stage,
	assignedTailorID *kernel.UUID,
	limit, offset int,
) (ListWorkOrdersQuery, error) {
	q := ListWorkOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if stage != nil {
		if err := stage.Validate(); err != nil {
			return ListWorkOrdersQuery{}, err
		}
		q.stage = stage
	}
	if assignedTailorID != nil {
		if err := assignedTailorID.Validate(); err != nil {
			return ListWorkOrdersQuery{}, err
		}
		q.assignedTailorID = assignedTailorID
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	q.limit = limit
	q.offset = offset
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListWorkOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkOrdersQueryIsNotConstructed)
}

// Stage returns the stage filter, nil for all stages.
func (q ListWorkOrdersQuery) Stage() *workorder.Stage {
	return q.stage
}

// AssignedTailorID returns the tailor filter, nil for all tailors.
func (q ListWorkOrdersQuery) AssignedTailorID() *kernel.UUID {
	return q.assignedTailorID
}

// Limit returns the page size.
func (q ListWorkOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the page offset.
func (q ListWorkOrdersQuery) Offset() int {
	return q.offset
}

// ListWorkOrdersQueryResponse is one row of the work order list.
type ListWorkOrdersQueryResponse struct {
	ID           kernel.UUID
	CustomerName string
	Stage        string
	Priority     int
	DueAt        *time.Time

	// OpenTasks counts tasks still pending or in progress.
	OpenTasks int
}
