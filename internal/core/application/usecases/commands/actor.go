package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
)

// ErrActorIsRequired is returned when a command is built without a valid
// actor.
var ErrActorIsRequired = errors.New("actor is required")

// Actor identifies who requested a mutation. The identity provider upstream
// resolves the principal; the engine only carries the id into audit records.
// The zero value is not valid; use NewActor or SystemActor.
type Actor struct {
	id       *kernel.UUID
	isSystem bool
}

// NewActor creates an actor for a human principal.
func NewActor(id kernel.UUID) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: &id}, nil
}

// SystemActor creates the actor for system-triggered mutations (webhooks,
// scheduled sweeps). Audit records written for it carry a nil actor id.
func SystemActor() Actor {
	return Actor{isSystem: true}
}

// ID returns the principal's id, nil for the system actor.
func (a Actor) ID() *kernel.UUID {
	return a.id
}

// IsValid reports whether the actor was created through a constructor.
func (a Actor) IsValid() bool {
	return a.isSystem || a.id != nil
}
