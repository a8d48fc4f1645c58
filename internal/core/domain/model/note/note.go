// Package note provides the immutable Note entity attached to work orders.
package note

import (
	"errors"
	"fmt"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// ErrNoteIsNotConstructed is returned when a Note instance was not created
// through NewNote or RestoreNote.
var ErrNoteIsNotConstructed = errors.New("Note must be created via NewNote or RestoreNote")

// Visibility controls who may read a note.
type Visibility int

const (
	VisibilityUnknown Visibility = iota

	// VisibilityInternal is staff-only.
	VisibilityInternal

	// VisibilityCustomer is readable by the customer.
	VisibilityCustomer

	// VisibilityTailor is readable by assigned tailors.
	VisibilityTailor
)

func getVisibilityStrings() map[Visibility]string {
	return map[Visibility]string{
		VisibilityUnknown:  "unknown",
		VisibilityInternal: "internal",
		VisibilityCustomer: "customer",
		VisibilityTailor:   "tailor",
	}
}

// Validate checks if the Visibility value is defined.
func (v Visibility) Validate() error {
	if v == VisibilityUnknown {
		return errs.NewValueIsInvalidErrorWithCause("visibility",
			fmt.Errorf("%d is not a valid visibility", v))
	}
	if _, ok := getVisibilityStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("visibility",
			fmt.Errorf("%d is not a valid visibility", v))
	}
	return nil
}

func (v Visibility) String() string {
	if name, ok := getVisibilityStrings()[v]; ok {
		return name
	}
	return "unknown"
}

// VisibilityFromString parses a visibility name.
func VisibilityFromString(name string) (Visibility, error) {
	for visibility, s := range getVisibilityStrings() {
		if s == name && visibility != VisibilityUnknown {
			return visibility, nil
		}
	}
	return VisibilityUnknown, errs.NewValueIsInvalidErrorWithCause("visibility",
		fmt.Errorf("%q is not a valid visibility", name))
}

// Note is one immutable freeform comment on a work order. A nil authorID
// marks a system-generated note (for example the rework note a failed
// inspection leaves behind).
type Note struct {
	id          kernel.UUID
	workOrderID kernel.UUID
	authorID    *kernel.UUID
	visibility  Visibility
	body        string

	isConstructed bool
}

// NewNote creates a note on a work order.
func NewNote(
	id kernel.UUID,
	workOrderID kernel.UUID,
	authorID *kernel.UUID,
	visibility Visibility,
	body string,
) (*Note, error) {
	if err := errors.Join(
		id.Validate(),
		workOrderID.Validate(),
		visibility.Validate(),
	); err != nil {
		return nil, err
	}
	if body == "" {
		return nil, errs.NewValueIsRequiredError("body")
	}
	if authorID != nil {
		if err := authorID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Note{
		id:            id,
		workOrderID:   workOrderID,
		authorID:      authorID,
		visibility:    visibility,
		body:          body,
		isConstructed: true,
	}, nil
}

// RestoreNote reconstructs a note from persistence.
func RestoreNote(
	id kernel.UUID,
	workOrderID kernel.UUID,
	authorID *kernel.UUID,
	visibility Visibility,
	body string,
) (*Note, error) {
	return NewNote(id, workOrderID, authorID, visibility, body)
}

// Validate ensures the Note was properly constructed.
func (n *Note) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNoteIsNotConstructed
	}
	return nil
}

// ID returns the note's unique identifier.
func (n *Note) ID() kernel.UUID { return n.id }

// WorkOrderID returns the owning work order.
func (n *Note) WorkOrderID() kernel.UUID { return n.workOrderID }

// AuthorID returns the authoring principal, nil for system notes.
func (n *Note) AuthorID() *kernel.UUID { return n.authorID }

// Visibility returns who may read the note.
func (n *Note) Visibility() Visibility { return n.visibility }

// Body returns the freeform text.
func (n *Note) Body() string { return n.body }
