// Package audit provides the append-only audit Record. One record is written
// per committed state-changing operation, inside the same transaction as the
// change it describes; rejected or failed operations leave no record. Records
// are never updated or deleted.
package audit

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record instance was not
// created through NewRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord")

// Action names the committed operation an audit record describes.
type Action string

const (
	ActionWorkOrderCreated   Action = "work_order_created"
	ActionWorkOrderUpdated   Action = "work_order_updated"
	ActionMeasurementCreated Action = "measurement_created"
	ActionQCResultCreated    Action = "qc_result_created"
	ActionShipmentCreated    Action = "shipment_created"
	ActionShipmentUpdated    Action = "shipment_updated"
	ActionTaskCreated        Action = "task_created"
	ActionTaskUpdated        Action = "task_updated"
	ActionNoteCreated        Action = "note_created"
)

// Diff is the opaque structured payload describing what changed. Every call
// site must populate it; an empty diff is rejected rather than silently
// defaulted.
type Diff map[string]any

// Record is one immutable audit entry. A nil actorID marks a
// system-triggered change (webhooks, sweeps).
type Record struct {
	id      kernel.UUID
	actorID *kernel.UUID
	action  Action
	target  string
	diff    Diff

	isConstructed bool
}

// NewRecord creates an audit record. target is the identifier of the entity
// the action applies to; diff must be non-empty.
func NewRecord(
	id kernel.UUID,
	actorID *kernel.UUID,
	action Action,
	target string,
	diff Diff,
) (*Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if target == "" {
		return nil, errs.NewValueIsRequiredError("target")
	}
	if len(diff) == 0 {
		return nil, errs.NewValueIsRequiredError("diff")
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
	}

	copied := make(Diff, len(diff))
	for k, v := range diff {
		copied[k] = v
	}

	return &Record{
		id:            id,
		actorID:       actorID,
		action:        action,
		target:        target,
		diff:          copied,
		isConstructed: true,
	}, nil
}

// Validate ensures the Record was properly constructed.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID { return r.id }

// ActorID returns the acting principal, nil for system-triggered changes.
func (r *Record) ActorID() *kernel.UUID { return r.actorID }

// Action returns the committed operation.
func (r *Record) Action() Action { return r.action }

// Target returns the identifier of the affected entity.
func (r *Record) Target() string { return r.target }

// Diff returns a copy of the structured change payload.
func (r *Record) Diff() Diff {
	out := make(Diff, len(r.diff))
	for k, v := range r.diff {
		out[k] = v
	}
	return out
}
