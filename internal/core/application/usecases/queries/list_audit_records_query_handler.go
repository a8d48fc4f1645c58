package queries

import (
	"context"
	"encoding/json"

	"atelier/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAuditRecordsQueryHandler reads the append-only audit trail. The trail
// is immutable, so this handler only ever selects.
type ListAuditRecordsQueryHandler struct {
	db *gorm.DB
}

// NewListAuditRecordsQueryHandler creates a handler for audit trail queries.
func NewListAuditRecordsQueryHandler(db *gorm.DB) ListAuditRecordsQueryHandler {
	return ListAuditRecordsQueryHandler{db: db}
}

// Handle executes the audit trail query, newest records first.
func (h ListAuditRecordsQueryHandler) Handle(
	ctx context.Context,
	query ListAuditRecordsQuery,
) ([]ListAuditRecordsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]ListAuditRecordsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			actor_id,
			action,
			target,
			diff,
			created_at
		FROM audit_records
		WHERE (? = '' OR action = ?)
			AND (? = '' OR target = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`,
		query.Action(), query.Action(),
		query.Target(), query.Target(),
		query.Limit(), query.Offset(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp    ListAuditRecordsQueryResponse
			id      uuid.UUID
			actorID uuid.NullUUID
			diff    []byte
		)

		err = rows.Scan(&id, &actorID, &resp.Action, &resp.Target, &diff, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if actorID.Valid {
			actor, idErr := kernel.UUIDFromBytes(actorID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.ActorID = &actor
		}
		if len(diff) > 0 {
			if err = json.Unmarshal(diff, &resp.Diff); err != nil {
				return nil, err
			}
		}
		records = append(records, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
