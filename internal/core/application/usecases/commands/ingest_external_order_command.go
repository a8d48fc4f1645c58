package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/workorder"
	"atelier/internal/pkg/guard"
)

var (
	ErrIngestExternalOrderCommandIsNotConstructed = errors.New(
		"IngestExternalOrderCommand must be created via NewIngestExternalOrderCommand constructor",
	)
	ErrExternalOrderIDIsRequired = errors.New("external order id is required")
)

// IngestExternalOrderCommand represents one order pushed by the external
// sales channel. Deliveries are retried by the channel, so the same external
// order id may arrive more than once; the handler treats repeats as no-ops.
type IngestExternalOrderCommand struct { //nolint:recvcheck //using for validation
	workOrderID     kernel.UUID
	externalOrderID string
	customer        workorder.Customer
	priority        int

	// lineItems are the purchased product names; they determine the default
	// task set seeded on the new order.
	lineItems []string

	guard guard.ConstructorGuard
}

// NewIngestExternalOrderCommand creates a command to ingest a sales-channel
// order.
func NewIngestExternalOrderCommand(
	workOrderID kernel.UUID,
	externalOrderID string,
	customer workorder.Customer,
	priority int,
	lineItems []string,
) (IngestExternalOrderCommand, error) {
	cmd := IngestExternalOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWorkOrderID(workOrderID),
		cmd.setExternalOrderID(externalOrderID),
		cmd.setCustomer(customer),
	); err != nil {
		return IngestExternalOrderCommand{}, err
	}

	cmd.priority = priority
	cmd.lineItems = append([]string(nil), lineItems...)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestExternalOrderCommand) Validate() error {
	return c.guard.Validate(ErrIngestExternalOrderCommandIsNotConstructed)
}

// WorkOrderID returns the identifier the new work order will carry.
func (c IngestExternalOrderCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// ExternalOrderID returns the sales-channel order reference.
func (c IngestExternalOrderCommand) ExternalOrderID() string {
	return c.externalOrderID
}

// Customer returns the owning customer.
func (c IngestExternalOrderCommand) Customer() workorder.Customer {
	return c.customer
}

// Priority returns the production priority.
func (c IngestExternalOrderCommand) Priority() int {
	return c.priority
}

// LineItems returns a copy of the purchased product names.
func (c IngestExternalOrderCommand) LineItems() []string {
	return append([]string(nil), c.lineItems...)
}

func (c *IngestExternalOrderCommand) setWorkOrderID(workOrderID kernel.UUID) error {
	if err := workOrderID.Validate(); err != nil {
		return err
	}

	c.workOrderID = workOrderID
	return nil
}

func (c *IngestExternalOrderCommand) setExternalOrderID(externalOrderID string) error {
	if externalOrderID == "" {
		return ErrExternalOrderIDIsRequired
	}

	c.externalOrderID = externalOrderID
	return nil
}

func (c *IngestExternalOrderCommand) setCustomer(customer workorder.Customer) error {
	if customer.IsZero() {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}
