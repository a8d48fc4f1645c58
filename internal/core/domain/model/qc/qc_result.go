// Package qc provides the immutable QCResult entity. Adjudication of a result
// (rework task, note, stage change) is a one-shot side effect of its creation
// handled by the application layer; the entity itself never changes.
package qc

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// ErrQCResultIsNotConstructed is returned when a QCResult instance was not
// created through NewQCResult or RestoreQCResult.
var ErrQCResultIsNotConstructed = errors.New(
	"QCResult must be created via NewQCResult or RestoreQCResult")

// CheckpointResult records the outcome of one checkpoint of the inspection
// form.
type CheckpointResult struct {
	Checkpoint string `json:"checkpoint"`
	Passed     bool   `json:"passed"`
	Comment    string `json:"comment,omitempty"`
}

// QCResult is one immutable inspection outcome against a QC form definition.
type QCResult struct {
	id          kernel.UUID
	workOrderID kernel.UUID
	formID      string
	formName    string
	inspectorID kernel.UUID
	results     []CheckpointResult
	pass        bool
	photos      []string

	isConstructed bool
}

// NewQCResult creates an inspection result. formID references the QC form
// definition the inspection ran against; formName is denormalized for the
// rework note.
func NewQCResult(
	id kernel.UUID,
	workOrderID kernel.UUID,
	formID, formName string,
	inspectorID kernel.UUID,
	results []CheckpointResult,
	pass bool,
	photos []string,
) (*QCResult, error) {
	if err := errors.Join(
		id.Validate(),
		workOrderID.Validate(),
		inspectorID.Validate(),
	); err != nil {
		return nil, err
	}
	if formID == "" {
		return nil, errs.NewValueIsRequiredError("formID")
	}
	if len(results) == 0 {
		return nil, errs.NewValueIsRequiredError("results")
	}

	return &QCResult{
		id:            id,
		workOrderID:   workOrderID,
		formID:        formID,
		formName:      formName,
		inspectorID:   inspectorID,
		results:       append([]CheckpointResult(nil), results...),
		pass:          pass,
		photos:        append([]string(nil), photos...),
		isConstructed: true,
	}, nil
}

// RestoreQCResult reconstructs an inspection result from persistence.
func RestoreQCResult(
	id kernel.UUID,
	workOrderID kernel.UUID,
	formID, formName string,
	inspectorID kernel.UUID,
	results []CheckpointResult,
	pass bool,
	photos []string,
) (*QCResult, error) {
	return NewQCResult(id, workOrderID, formID, formName, inspectorID, results, pass, photos)
}

// Validate ensures the QCResult was properly constructed.
func (r *QCResult) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrQCResultIsNotConstructed
	}
	return nil
}

// ID returns the result's unique identifier.
func (r *QCResult) ID() kernel.UUID { return r.id }

// WorkOrderID returns the inspected work order.
func (r *QCResult) WorkOrderID() kernel.UUID { return r.workOrderID }

// FormID returns the QC form definition the inspection ran against.
func (r *QCResult) FormID() string { return r.formID }

// FormName returns the denormalized form name.
func (r *QCResult) FormName() string { return r.formName }

// InspectorID returns the inspecting principal.
func (r *QCResult) InspectorID() kernel.UUID { return r.inspectorID }

// Results returns a copy of the per-checkpoint outcomes.
func (r *QCResult) Results() []CheckpointResult {
	return append([]CheckpointResult(nil), r.results...)
}

// Pass reports whether the inspection passed overall.
func (r *QCResult) Pass() bool { return r.pass }

// Photos returns a copy of the photo references.
func (r *QCResult) Photos() []string {
	return append([]string(nil), r.photos...)
}
