package queries

import (
	"context"
	"database/sql"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListWorkOrdersQueryHandler retrieves the work order list with open task
// counts. Soft-deleted orders never appear.
type ListWorkOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListWorkOrdersQueryHandler creates a handler for work order list
// queries.
func NewListWorkOrdersQueryHandler(db *gorm.DB) ListWorkOrdersQueryHandler {
	return ListWorkOrdersQueryHandler{db: db}
}

// Handle executes the list query. Results are ordered by priority descending,
// then oldest first, so the most urgent work tops the list.
func (h ListWorkOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListWorkOrdersQuery,
) ([]ListWorkOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stageFilter := ""
	if query.Stage() != nil {
		stageFilter = query.Stage().String()
	}
	var tailorFilter any
	if query.AssignedTailorID() != nil {
		tailorFilter = query.AssignedTailorID().Bytes()
	}

	orders := make([]ListWorkOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			wo.id,
			wo.customer_name,
			wo.current_stage,
			wo.priority,
			wo.due_at,
			COUNT(t.id) FILTER (WHERE t.status IN (?, ?)) AS open_tasks
		FROM work_orders wo
		LEFT JOIN tasks t ON t.work_order_id = wo.id
		WHERE wo.deleted_at IS NULL
			AND (? = '' OR wo.current_stage = ?)
			AND (?::uuid IS NULL OR wo.assigned_tailor_id = ?)
		GROUP BY wo.id
		ORDER BY wo.priority DESC, wo.created_at
		LIMIT ? OFFSET ?
	`,
		task.StatusPending.String(), task.StatusInProgress.String(),
		stageFilter, stageFilter,
		tailorFilter, tailorFilter,
		query.Limit(), query.Offset(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp  ListWorkOrdersQueryResponse
			id    uuid.UUID
			dueAt sql.NullTime
		)

		err = rows.Scan(&id, &resp.CustomerName, &resp.Stage, &resp.Priority, &dueAt, &resp.OpenTasks)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if dueAt.Valid {
			resp.DueAt = &dueAt.Time
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
