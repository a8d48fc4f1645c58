package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand represents an explicit request to move a work
// order to a target stage. Whether the move is permitted is decided entirely
// by the transition engine; the command only names the edge.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(workOrderID, workorder.InQC, actor)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errs.ErrInvalidTransition: not an edge of the state machine
//	    // errs.ErrGuardFailed: edge exists, precondition does not hold
//	    // errs.ErrStageConflict: a concurrent transition committed first
//	    return err
//	}
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	workOrderID kernel.UUID
	targetStage workorder.Stage
	actor       Actor

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a command to request a stage change.
func NewRequestTransitionCommand(
	workOrderID kernel.UUID,
	targetStage workorder.Stage,
	actor Actor,
) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWorkOrderID(workOrderID),
		targetStage.Validate(),
		cmd.setActor(actor),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	cmd.targetStage = targetStage
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// WorkOrderID returns the work order to move.
func (c RequestTransitionCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// TargetStage returns the requested stage.
func (c RequestTransitionCommand) TargetStage() workorder.Stage {
	return c.targetStage
}

// Actor returns the requesting principal.
func (c RequestTransitionCommand) Actor() Actor {
	return c.actor
}

func (c *RequestTransitionCommand) setWorkOrderID(workOrderID kernel.UUID) error {
	if err := workOrderID.Validate(); err != nil {
		return err
	}

	c.workOrderID = workOrderID
	return nil
}

func (c *RequestTransitionCommand) setActor(actor Actor) error {
	if !actor.IsValid() {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
