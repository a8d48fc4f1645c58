package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/guard"
)

var (
	ErrBookShipmentCommandIsNotConstructed = errors.New(
		"BookShipmentCommand must be created via NewBookShipmentCommand constructor",
	)
	ErrWeightIsInvalid = errors.New("weight must be greater than 0")
)

// BookShipmentCommand represents a request to book a carrier shipment for a
// work order that passed its final inspection. Recipient fields left empty
// default to the customer's contact details.
type BookShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	workOrderID kernel.UUID

	recipientName    string
	recipientAddress string
	recipientCity    string
	recipientCountry string
	recipientPhone   string
	weightKg         float64
	description      string

	actor Actor

	guard guard.ConstructorGuard
}

// NewBookShipmentCommand creates a command to book a shipment.
func NewBookShipmentCommand(
	shipmentID kernel.UUID,
	workOrderID kernel.UUID,
	recipientName, recipientAddress, recipientCity, recipientCountry, recipientPhone string,
	weightKg float64,
	description string,
	actor Actor,
) (BookShipmentCommand, error) {
	cmd := BookShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setWorkOrderID(workOrderID),
		cmd.setWeightKg(weightKg),
		cmd.setActor(actor),
	); err != nil {
		return BookShipmentCommand{}, err
	}

	cmd.recipientName = recipientName
	cmd.recipientAddress = recipientAddress
	cmd.recipientCity = recipientCity
	cmd.recipientCountry = recipientCountry
	cmd.recipientPhone = recipientPhone
	cmd.description = description
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BookShipmentCommand) Validate() error {
	return c.guard.Validate(ErrBookShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier the new shipment will carry.
func (c BookShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// WorkOrderID returns the shipped work order.
func (c BookShipmentCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// RecipientName returns the recipient name override, "" for the customer's.
func (c BookShipmentCommand) RecipientName() string {
	return c.recipientName
}

// RecipientAddress returns the delivery address.
func (c BookShipmentCommand) RecipientAddress() string {
	return c.recipientAddress
}

// RecipientCity returns the destination city override, "" for the customer's.
func (c BookShipmentCommand) RecipientCity() string {
	return c.recipientCity
}

// RecipientCountry returns the destination country override, "" for the
// customer's.
func (c BookShipmentCommand) RecipientCountry() string {
	return c.recipientCountry
}

// RecipientPhone returns the recipient phone override, "" for the customer's.
func (c BookShipmentCommand) RecipientPhone() string {
	return c.recipientPhone
}

// WeightKg returns the parcel weight in kilograms.
func (c BookShipmentCommand) WeightKg() float64 {
	return c.weightKg
}

// Description returns the customs description of the parcel contents.
func (c BookShipmentCommand) Description() string {
	return c.description
}

// Actor returns the requesting principal.
func (c BookShipmentCommand) Actor() Actor {
	return c.actor
}

func (c *BookShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *BookShipmentCommand) setWorkOrderID(workOrderID kernel.UUID) error {
	if err := workOrderID.Validate(); err != nil {
		return err
	}

	c.workOrderID = workOrderID
	return nil
}

func (c *BookShipmentCommand) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return ErrWeightIsInvalid
	}

	c.weightKg = weightKg
	return nil
}

func (c *BookShipmentCommand) setActor(actor Actor) error {
	if !actor.IsValid() {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
