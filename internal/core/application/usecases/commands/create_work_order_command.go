package commands

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/pkg/guard"
)

var (
	ErrCreateWorkOrderCommandIsNotConstructed = errors.New(
		"CreateWorkOrderCommand must be created via NewCreateWorkOrderCommand constructor",
	)
	ErrCustomerIsRequired = errors.New("customer is required")
)

// CreateWorkOrderCommand represents a request to register a work order
// in-house. The order starts at measurement_pending: the customer is already
// known, so intake has nothing left to do.
//
// Example:
//
//	customer, _ := workorder.NewCustomer("Akech Deng", "akech@example.com", "", "SS", "Juba")
//	cmd, err := NewCreateWorkOrderCommand(kernel.NewUUID(), customer, 1, nil, actor)
//	if err != nil {
//	    return fmt.Errorf("invalid work order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create work order: %w", err)
//	}
type CreateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	workOrderID kernel.UUID
	customer    workorder.Customer
	priority    int
	dueAt       *time.Time
	actor       Actor

	guard guard.ConstructorGuard
}

// NewCreateWorkOrderCommand creates a command to register a new work order.
func NewCreateWorkOrderCommand(
	workOrderID kernel.UUID,
	customer workorder.Customer,
	priority int,
	dueAt *time.Time,
	actor Actor,
) (CreateWorkOrderCommand, error) {
	cmd := CreateWorkOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWorkOrderID(workOrderID),
		cmd.setCustomer(customer),
		cmd.setActor(actor),
	); err != nil {
		return CreateWorkOrderCommand{}, err
	}

	cmd.priority = priority
	cmd.dueAt = dueAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrderCommandIsNotConstructed)
}

// WorkOrderID returns the identifier the new work order will carry.
func (c CreateWorkOrderCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// Customer returns the owning customer.
func (c CreateWorkOrderCommand) Customer() workorder.Customer {
	return c.customer
}

// Priority returns the production priority.
func (c CreateWorkOrderCommand) Priority() int {
	return c.priority
}

// DueAt returns the optional deadline.
func (c CreateWorkOrderCommand) DueAt() *time.Time {
	return c.dueAt
}

// Actor returns the requesting principal.
func (c CreateWorkOrderCommand) Actor() Actor {
	return c.actor
}

func (c *CreateWorkOrderCommand) setWorkOrderID(workOrderID kernel.UUID) error {
	if err := workOrderID.Validate(); err != nil {
		return err
	}

	c.workOrderID = workOrderID
	return nil
}

func (c *CreateWorkOrderCommand) setCustomer(customer workorder.Customer) error {
	if customer.IsZero() {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}

func (c *CreateWorkOrderCommand) setActor(actor Actor) error {
	if !actor.IsValid() {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
