package commands

import (
	"errors"
	"time"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrApplyCarrierUpdateCommandIsNotConstructed = errors.New(
	"ApplyCarrierUpdateCommand must be created via NewApplyCarrierUpdateCommand constructor",
)

// ApplyCarrierUpdateCommand represents one tracking update pushed by the
// carrier webhook. Updates carry the carrier's update code and free-text
// status; unknown codes degrade to in_transit rather than failing the
// webhook.
type ApplyCarrierUpdateCommand struct { //nolint:recvcheck //using for validation
	waybill    string
	updateCode string
	statusText string
	occurredAt time.Time
	location   string

	guard guard.ConstructorGuard
}

// NewApplyCarrierUpdateCommand creates a command to apply a carrier tracking
// update.
func NewApplyCarrierUpdateCommand(
	waybill, updateCode, statusText string,
	occurredAt time.Time,
	location string,
) (ApplyCarrierUpdateCommand, error) {
	cmd := ApplyCarrierUpdateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if waybill == "" {
		return ApplyCarrierUpdateCommand{}, errs.NewValueIsRequiredError("waybill")
	}

	cmd.waybill = waybill
	cmd.updateCode = updateCode
	cmd.statusText = statusText
	cmd.occurredAt = occurredAt
	cmd.location = location
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCarrierUpdateCommand) Validate() error {
	return c.guard.Validate(ErrApplyCarrierUpdateCommandIsNotConstructed)
}

// Waybill returns the carrier tracking identifier.
func (c ApplyCarrierUpdateCommand) Waybill() string {
	return c.waybill
}

// UpdateCode returns the carrier's tracking update code.
func (c ApplyCarrierUpdateCommand) UpdateCode() string {
	return c.updateCode
}

// StatusText returns the carrier's free-text status.
func (c ApplyCarrierUpdateCommand) StatusText() string {
	return c.statusText
}

// OccurredAt returns when the tracking event happened.
func (c ApplyCarrierUpdateCommand) OccurredAt() time.Time {
	return c.occurredAt
}

// Location returns the carrier-reported location, possibly empty.
func (c ApplyCarrierUpdateCommand) Location() string {
	return c.location
}
