package workorder

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

var (
	// ErrWorkOrderIsNotConstructed is returned when a WorkOrder instance was
	// not created through one of the factory functions. This ensures all work
	// orders are properly validated.
	ErrWorkOrderIsNotConstructed = errors.New(
		"WorkOrder must be created via NewWorkOrder, NewExternalWorkOrder or RestoreWorkOrder")
)

// WorkOrder is the aggregate root tracking one suit order through the
// production and delivery pipeline.
//
// WorkOrder follows these invariants:
//   - Must have a valid unique identifier and a customer
//   - currentStage only changes through ChangeStage, which consults the
//     stage adjacency table; the transition engine is the only caller that
//     commits those changes
//   - Priority is never negative
//   - Can only be created through its factory functions
type WorkOrder struct {
	id kernel.UUID

	// externalOrderID references the sales-channel order this work order was
	// ingested from ("" for orders created in-house).
	externalOrderID string

	customer Customer

	currentStage Stage

	// priority orders the production queue; higher means more urgent.
	priority int

	dueAt *time.Time

	// assignedTailorID is the fitting-region tailor responsible for the
	// order (nil if unassigned).
	assignedTailorID *kernel.UUID

	isConstructed bool
}

// NewWorkOrder creates a work order registered in-house. It starts at
// measurement_pending: the customer is known, so intake is already done.
func NewWorkOrder(id kernel.UUID, customer Customer, priority int, dueAt *time.Time) (*WorkOrder, error) {
	wo := &WorkOrder{
		currentStage:  MeasurementPending,
		isConstructed: true,
	}

	if err := errors.Join(
		wo.setID(id),
		wo.setCustomer(customer),
		wo.setPriority(priority),
	); err != nil {
		return nil, err
	}

	wo.dueAt = dueAt
	return wo, nil
}

// NewExternalWorkOrder creates a work order ingested from an external sales
// channel. It starts at intake_pending and carries the channel's order
// reference; the ingestion flow advances it to measurement_pending once the
// default task set has been seeded.
func NewExternalWorkOrder(
	id kernel.UUID,
	externalOrderID string,
	customer Customer,
	priority int,
) (*WorkOrder, error) {
	if externalOrderID == "" {
		return nil, errs.NewValueIsRequiredError("externalOrderID")
	}

	wo := &WorkOrder{
		currentStage:    IntakePending,
		externalOrderID: externalOrderID,
		isConstructed:   true,
	}

	if err := errors.Join(
		wo.setID(id),
		wo.setCustomer(customer),
		wo.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return wo, nil
}

// RestoreWorkOrder reconstructs a work order from persistence. It bypasses
// the initial-stage rules but still validates every field.
func RestoreWorkOrder(
	id kernel.UUID,
	externalOrderID string,
	customer Customer,
	currentStage Stage,
	priority int,
	dueAt *time.Time,
	assignedTailorID *kernel.UUID,
) (*WorkOrder, error) {
	wo := &WorkOrder{
		externalOrderID: externalOrderID,
		isConstructed:   true,
	}

	if err := errors.Join(
		wo.setID(id),
		wo.setCustomer(customer),
		wo.setPriority(priority),
		currentStage.Validate(),
	); err != nil {
		return nil, err
	}

	if assignedTailorID != nil {
		if err := assignedTailorID.Validate(); err != nil {
			return nil, err
		}
		wo.assignedTailorID = assignedTailorID
	}

	wo.currentStage = currentStage
	wo.dueAt = dueAt
	return wo, nil
}

// Validate ensures the WorkOrder instance was properly constructed through a
// factory function.
func (wo *WorkOrder) Validate() error {
	if wo == nil || !wo.isConstructed {
		return ErrWorkOrderIsNotConstructed
	}
	return nil
}

// ID returns the work order's unique identifier.
func (wo *WorkOrder) ID() kernel.UUID {
	return wo.id
}

// ExternalOrderID returns the sales-channel order reference, or "" for
// in-house orders.
func (wo *WorkOrder) ExternalOrderID() string {
	return wo.externalOrderID
}

// Customer returns the owning customer.
func (wo *WorkOrder) Customer() Customer {
	return wo.customer
}

// Stage returns the current pipeline stage.
func (wo *WorkOrder) Stage() Stage {
	return wo.currentStage
}

// Priority returns the production priority; higher means more urgent.
func (wo *WorkOrder) Priority() int {
	return wo.priority
}

// DueAt returns the optional deadline.
func (wo *WorkOrder) DueAt() *time.Time {
	return wo.dueAt
}

// AssignedTailorID returns the fitting-region tailor, nil if unassigned.
func (wo *WorkOrder) AssignedTailorID() *kernel.UUID {
	return wo.assignedTailorID
}

// IsEqual compares two work orders by their unique identifiers.
func (wo *WorkOrder) IsEqual(other *WorkOrder) bool {
	return other != nil && wo.id.IsEqual(other.id)
}

// ChangeStage moves the work order along a recognized edge of the state
// machine. It returns InvalidTransitionError when (current → to) is not in
// the adjacency table. Guards that depend on other entities are evaluated by
// the transition engine before this is called.
func (wo *WorkOrder) ChangeStage(to Stage) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !wo.currentStage.CanTransitionTo(to) {
		return errs.NewInvalidTransitionError(wo.currentStage.String(), to.String())
	}

	wo.currentStage = to
	return nil
}

// AssignTailor assigns the fitting-region tailor responsible for the order.
func (wo *WorkOrder) AssignTailor(tailorID kernel.UUID) error {
	if err := tailorID.Validate(); err != nil {
		return err
	}
	wo.assignedTailorID = &tailorID
	return nil
}

// SetPriority updates the production priority.
func (wo *WorkOrder) SetPriority(priority int) error {
	return wo.setPriority(priority)
}

// SetDueAt updates the deadline.
func (wo *WorkOrder) SetDueAt(dueAt *time.Time) {
	wo.dueAt = dueAt
}

func (wo *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	wo.id = id
	return nil
}

func (wo *WorkOrder) setCustomer(customer Customer) error {
	if customer.IsZero() {
		return errs.NewValueIsRequiredError("customer")
	}
	wo.customer = customer
	return nil
}

func (wo *WorkOrder) setPriority(priority int) error {
	if priority < 0 {
		return errs.NewValueIsInvalidError("priority")
	}
	wo.priority = priority
	return nil
}
