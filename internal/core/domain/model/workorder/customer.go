package workorder

import (
	"errors"

	"atelier/internal/pkg/errs"
)

// Customer is the value object describing the person the suit is made for.
// The engine only needs name and contact details for notifications and
// carrier bookings; customer lifecycle management happens elsewhere.
type Customer struct {
	name    string
	email   string
	phone   string
	country string
	city    string
}

// NewCustomer creates a Customer value object. Name and email are required;
// phone, country and city are optional contact details used by shipment
// booking defaults.
func NewCustomer(name, email, phone, country, city string) (Customer, error) {
	if err := errors.Join(
		requireField("customerName", name),
		requireField("customerEmail", email),
	); err != nil {
		return Customer{}, err
	}

	return Customer{
		name:    name,
		email:   email,
		phone:   phone,
		country: country,
		city:    city,
	}, nil
}

func requireField(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}

// Name returns the customer's full name.
func (c Customer) Name() string { return c.name }

// Email returns the customer's email address, the notification recipient.
func (c Customer) Email() string { return c.email }

// Phone returns the customer's phone number.
func (c Customer) Phone() string { return c.phone }

// Country returns the customer's country, the default shipping destination.
func (c Customer) Country() string { return c.country }

// City returns the customer's city.
func (c Customer) City() string { return c.city }

// IsZero reports whether the customer carries no data.
func (c Customer) IsZero() bool {
	return c == Customer{}
}
