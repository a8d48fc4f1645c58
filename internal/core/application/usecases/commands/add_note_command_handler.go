package commands

import (
	"context"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/note"
)

// AddNoteCommandHandler handles note creation.
type AddNoteCommandHandler struct {
	uowFactory UoWFactory
}

// NewAddNoteCommandHandler creates a handler for note creation.
func NewAddNoteCommandHandler(uowFactory UoWFactory) AddNoteCommandHandler {
	return AddNoteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the note creation command.
func (h *AddNoteCommandHandler) Handle(ctx context.Context, cmd AddNoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	wo, err := uow.WorkOrderRepository().Get(ctx, cmd.WorkOrderID())
	if err != nil {
		return err
	}

	n, err := note.NewNote(cmd.NoteID(), wo.ID(), cmd.Actor().ID(), cmd.Visibility(), cmd.Body())
	if err != nil {
		return err
	}

	if err = uow.NoteRepository().Add(ctx, n); err != nil {
		return err
	}

	err = appendAudit(ctx, uow, cmd.Actor(), audit.ActionNoteCreated, n.ID().String(),
		audit.Diff{
			"workOrderId": wo.ID().String(),
			"visibility":  n.Visibility().String(),
		})
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
