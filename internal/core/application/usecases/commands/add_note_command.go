package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/note"
	"atelier/internal/pkg/guard"
)

var (
	ErrAddNoteCommandIsNotConstructed = errors.New(
		"AddNoteCommand must be created via NewAddNoteCommand constructor",
	)
	ErrBodyIsRequired = errors.New("note body is required")
)

// AddNoteCommand represents a request to attach a freeform note to a work
// order.
type AddNoteCommand struct { //nolint:recvcheck //using for validation
	noteID      kernel.UUID
	workOrderID kernel.UUID
	visibility  note.Visibility
	body        string
	actor       Actor

	guard guard.ConstructorGuard
}

// NewAddNoteCommand creates a command to attach a note.
func NewAddNoteCommand(
	noteID kernel.UUID,
	workOrderID kernel.UUID,
	visibility note.Visibility,
	body string,
	actor Actor,
) (AddNoteCommand, error) {
	cmd := AddNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNoteID(noteID),
		cmd.setWorkOrderID(workOrderID),
		visibility.Validate(),
		cmd.setBody(body),
		cmd.setActor(actor),
	); err != nil {
		return AddNoteCommand{}, err
	}

	cmd.visibility = visibility
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddNoteCommandIsNotConstructed)
}

// NoteID returns the identifier the new note will carry.
func (c AddNoteCommand) NoteID() kernel.UUID {
	return c.noteID
}

// WorkOrderID returns the owning work order.
func (c AddNoteCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// Visibility returns who may read the note.
func (c AddNoteCommand) Visibility() note.Visibility {
	return c.visibility
}

// Body returns the freeform text.
func (c AddNoteCommand) Body() string {
	return c.body
}

// Actor returns the authoring principal.
func (c AddNoteCommand) Actor() Actor {
	return c.actor
}

func (c *AddNoteCommand) setNoteID(noteID kernel.UUID) error {
	if err := noteID.Validate(); err != nil {
		return err
	}

	c.noteID = noteID
	return nil
}

func (c *AddNoteCommand) setWorkOrderID(workOrderID kernel.UUID) error {
	if err := workOrderID.Validate(); err != nil {
		return err
	}

	c.workOrderID = workOrderID
	return nil
}

func (c *AddNoteCommand) setBody(body string) error {
	if body == "" {
		return ErrBodyIsRequired
	}

	c.body = body
	return nil
}

func (c *AddNoteCommand) setActor(actor Actor) error {
	if !actor.IsValid() {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
