package queries

import (
	"context"
	"database/sql"
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWorkOrderQueryHandler retrieves one work order and its tasks straight
// from the database, bypassing the domain model. Soft-deleted orders are
// reported as not found.
type GetWorkOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkOrderQueryHandler creates a handler for work order detail
// queries.
func NewGetWorkOrderQueryHandler(db *gorm.DB) GetWorkOrderQueryHandler {
	return GetWorkOrderQueryHandler{db: db}
}

// Handle executes the detail query. Returns ObjectNotFoundError for unknown
// or soft-deleted orders.
func (h GetWorkOrderQueryHandler) Handle(
	ctx context.Context,
	query GetWorkOrderQuery,
) (GetWorkOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkOrderQueryResponse{}, err
	}

	var (
		resp             GetWorkOrderQueryResponse
		id               uuid.UUID
		externalOrderID  sql.NullString
		assignedTailorID uuid.NullUUID
		dueAt            sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			external_order_id,
			customer_name,
			customer_email,
			current_stage,
			priority,
			due_at,
			assigned_tailor_id
		FROM work_orders
		WHERE id = ? AND deleted_at IS NULL
	`, query.WorkOrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&externalOrderID,
		&resp.CustomerName,
		&resp.CustomerEmail,
		&resp.Stage,
		&resp.Priority,
		&dueAt,
		&assignedTailorID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetWorkOrderQueryResponse{},
			errs.NewObjectNotFoundError("workOrderID", query.WorkOrderID())
	}
	if err != nil {
		return GetWorkOrderQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetWorkOrderQueryResponse{}, err
	}
	resp.ExternalOrderID = externalOrderID.String
	if dueAt.Valid {
		resp.DueAt = &dueAt.Time
	}
	if assignedTailorID.Valid {
		tailorID, idErr := kernel.UUIDFromBytes(assignedTailorID.UUID[:])
		if idErr != nil {
			return GetWorkOrderQueryResponse{}, idErr
		}
		resp.AssignedTailorID = &tailorID
	}

	resp.Tasks, err = h.loadTasks(ctx, query.WorkOrderID())
	if err != nil {
		return GetWorkOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetWorkOrderQueryHandler) loadTasks(
	ctx context.Context,
	workOrderID kernel.UUID,
) ([]WorkOrderTaskResponse, error) {
	tasks := make([]WorkOrderTaskResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			task_type,
			title,
			status,
			due_at
		FROM tasks
		WHERE work_order_id = ?
		ORDER BY created_at
	`, workOrderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			taskResp WorkOrderTaskResponse
			id       uuid.UUID
			dueAt    sql.NullTime
		)

		err = rows.Scan(&id, &taskResp.Type, &taskResp.Title, &taskResp.Status, &dueAt)
		if err != nil {
			return nil, err
		}

		taskResp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if dueAt.Valid {
			taskResp.DueAt = &dueAt.Time
		}
		tasks = append(tasks, taskResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
