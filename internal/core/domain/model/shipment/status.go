package shipment

import (
	"fmt"
	"strings"

	"atelier/internal/pkg/errs"
)

// Status represents the carrier lifecycle state of a shipment.
type Status int

const (
	StatusUnknown Status = iota

	// StatusLabelCreated means the carrier booking succeeded and a label
	// exists; the parcel has not been handed over yet.
	StatusLabelCreated

	// StatusPickedUp means the carrier collected the parcel.
	StatusPickedUp

	// StatusInTransit means the parcel is moving through the carrier network.
	StatusInTransit

	// StatusOutForDelivery means the parcel is on the final delivery leg.
	StatusOutForDelivery

	// StatusDelivered means the carrier confirmed delivery.
	StatusDelivered

	// StatusDeliveryFailed means a delivery attempt failed.
	StatusDeliveryFailed

	// StatusReturned means the parcel is going back to the sender.
	StatusReturned

	// StatusOnHold means the carrier paused the shipment.
	StatusOnHold
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusLabelCreated:   "label_created",
		StatusPickedUp:       "picked_up",
		StatusInTransit:      "in_transit",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusDeliveryFailed: "delivery_failed",
		StatusReturned:       "returned",
		StatusOnHold:         "on_hold",
	}
}

// carrierUpdateCodes maps the carrier's tracking update codes to shipment
// statuses. Codes outside this table fall back via MapCarrierUpdate so the
// webhook path never fails closed on an unknown code.
func carrierUpdateCodes() map[string]Status {
	return map[string]Status{
		"SH001": StatusPickedUp,
		"SH002": StatusInTransit,
		"SH003": StatusOutForDelivery,
		"SH004": StatusDelivered,
		"SH005": StatusDeliveryFailed,
		"SH006": StatusReturned,
		"SH007": StatusOnHold,
	}
}

// Validate checks if the Status value is one of the defined shipment statuses.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("shipmentStatus",
			fmt.Errorf("%d is not a valid shipment status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipmentStatus",
			fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}
	return "unknown"
}

// StatusFromString parses a shipment status name.
func StatusFromString(name string) (Status, error) {
	for status, s := range getStatusStrings() {
		if s == name && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("shipmentStatus",
		fmt.Errorf("%q is not a valid shipment status", name))
}

// MapCarrierUpdate resolves a carrier tracking update to a shipment status.
// Resolution order: known update code, then the free-text status if it names
// a known status, then the generic in_transit fallback.
func MapCarrierUpdate(updateCode, statusText string) Status {
	if status, ok := carrierUpdateCodes()[updateCode]; ok {
		return status
	}
	if status, err := StatusFromString(strings.ToLower(statusText)); err == nil {
		return status
	}
	return StatusInTransit
}
