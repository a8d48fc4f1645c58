package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/guard"
)

var ErrListAuditRecordsQueryIsNotConstructed = errors.New(
	"ListAuditRecordsQuery must be created via NewListAuditRecordsQuery constructor",
)

// ListAuditRecordsQuery retrieves a page of the audit trail, newest first,
// optionally filtered by action and target entity.
type ListAuditRecordsQuery struct {
	action string
	target string
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListAuditRecordsQuery creates an audit trail query. action and target
// are optional filters.
func NewListAuditRecordsQuery(action, target string, limit, offset int) ListAuditRecordsQuery {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return ListAuditRecordsQuery{
		action: action,
		target: target,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ListAuditRecordsQuery) Validate() error {
	return q.guard.Validate(ErrListAuditRecordsQueryIsNotConstructed)
}

// Action returns the action filter, "" for all actions.
func (q ListAuditRecordsQuery) Action() string {
	return q.action
}

// Target returns the target filter, "" for all targets.
func (q ListAuditRecordsQuery) Target() string {
	return q.target
}

// Limit returns the page size.
func (q ListAuditRecordsQuery) Limit() int {
	return q.limit
}

// Offset returns the page offset.
func (q ListAuditRecordsQuery) Offset() int {
	return q.offset
}

// ListAuditRecordsQueryResponse is one audit trail entry. A nil ActorID marks
// a system-triggered change.
type ListAuditRecordsQueryResponse struct {
	ID        kernel.UUID
	ActorID   *kernel.UUID
	Action    string
	Target    string
	Diff      map[string]any
	CreatedAt time.Time
}
