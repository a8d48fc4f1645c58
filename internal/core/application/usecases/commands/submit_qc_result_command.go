package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/qc"
	"atelier/internal/pkg/guard"
)

var (
	ErrSubmitQCResultCommandIsNotConstructed = errors.New(
		"SubmitQCResultCommand must be created via NewSubmitQCResultCommand constructor",
	)
	ErrFormIDIsRequired    = errors.New("form id is required")
	ErrResultsAreRequired  = errors.New("checkpoint results are required")
	ErrInspectorIsRequired = errors.New("inspector is required")
)

// SubmitQCResultCommand represents one completed inspection against a QC form.
// The overall verdict is the inspector's call: a failed checkpoint can be
// waived and the inspection still pass. The checkpoints are kept verbatim for
// the audit trail.
type SubmitQCResultCommand struct { //nolint:recvcheck //using for validation
	qcResultID  kernel.UUID
	workOrderID kernel.UUID
	formID      string
	formName    string
	results     []qc.CheckpointResult
	pass        bool
	photos      []string
	actor       Actor

	guard guard.ConstructorGuard
}

// NewSubmitQCResultCommand creates a command to record an inspection outcome.
// The actor is the inspector and must be a human principal.
func NewSubmitQCResultCommand(
	qcResultID kernel.UUID,
	workOrderID kernel.UUID,
	formID, formName string,
	results []qc.CheckpointResult,
	pass bool,
	photos []string,
	actor Actor,
) (SubmitQCResultCommand, error) {
	cmd := SubmitQCResultCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setQCResultID(qcResultID),
		cmd.setWorkOrderID(workOrderID),
		cmd.setFormID(formID),
		cmd.setResults(results),
		cmd.setActor(actor),
	); err != nil {
		return SubmitQCResultCommand{}, err
	}

	cmd.formName = formName
	cmd.pass = pass
	cmd.photos = append([]string(nil), photos...)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitQCResultCommand) Validate() error {
	return c.guard.Validate(ErrSubmitQCResultCommandIsNotConstructed)
}

// QCResultID returns the identifier the new inspection result will carry.
func (c SubmitQCResultCommand) QCResultID() kernel.UUID {
	return c.qcResultID
}

// WorkOrderID returns the inspected work order.
func (c SubmitQCResultCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// FormID returns the QC form definition the inspection ran against.
func (c SubmitQCResultCommand) FormID() string {
	return c.formID
}

// FormName returns the human-readable form name.
func (c SubmitQCResultCommand) FormName() string {
	return c.formName
}

// Results returns a copy of the per-checkpoint outcomes.
func (c SubmitQCResultCommand) Results() []qc.CheckpointResult {
	return append([]qc.CheckpointResult(nil), c.results...)
}

// Photos returns a copy of the photo references.
func (c SubmitQCResultCommand) Photos() []string {
	return append([]string(nil), c.photos...)
}

// Actor returns the inspecting principal.
func (c SubmitQCResultCommand) Actor() Actor {
	return c.actor
}

// Pass reports the inspector's overall verdict as submitted.
func (c SubmitQCResultCommand) Pass() bool {
	return c.pass
}

func (c *SubmitQCResultCommand) setQCResultID(qcResultID kernel.UUID) error {
	if err := qcResultID.Validate(); err != nil {
		return err
	}

	c.qcResultID = qcResultID
	return nil
}

func (c *SubmitQCResultCommand) setWorkOrderID(workOrderID kernel.UUID) error {
	if err := workOrderID.Validate(); err != nil {
		return err
	}

	c.workOrderID = workOrderID
	return nil
}

func (c *SubmitQCResultCommand) setFormID(formID string) error {
	if formID == "" {
		return ErrFormIDIsRequired
	}

	c.formID = formID
	return nil
}

func (c *SubmitQCResultCommand) setResults(results []qc.CheckpointResult) error {
	if len(results) == 0 {
		return ErrResultsAreRequired
	}

	c.results = append([]qc.CheckpointResult(nil), results...)
	return nil
}

func (c *SubmitQCResultCommand) setActor(actor Actor) error {
	if !actor.IsValid() || actor.ID() == nil {
		return ErrInspectorIsRequired
	}

	c.actor = actor
	return nil
}
