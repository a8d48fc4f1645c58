// Package shipment provides the Shipment entity and the carrier status
// mapping. Tracking history is append-only: status updates add events and
// never remove them.
package shipment

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New(
	"Shipment must be created via NewShipment or RestoreShipment")

// TrackingEvent is one timestamped entry of a shipment's tracking history.
type TrackingEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
}

// Shipment is one carrier booking for a work order.
type Shipment struct {
	id              kernel.UUID
	workOrderID     kernel.UUID
	courier         string
	waybill         string
	status          Status
	trackingHistory []TrackingEvent
	cost            float64
	labelURL        string

	isConstructed bool
}

// NewShipment creates a shipment from a successful carrier booking. It
// starts at label_created.
func NewShipment(
	id kernel.UUID,
	workOrderID kernel.UUID,
	courier, waybill, labelURL string,
	cost float64,
) (*Shipment, error) {
	if err := errors.Join(
		id.Validate(),
		workOrderID.Validate(),
	); err != nil {
		return nil, err
	}
	if courier == "" {
		return nil, errs.NewValueIsRequiredError("courier")
	}
	if waybill == "" {
		return nil, errs.NewValueIsRequiredError("waybill")
	}

	return &Shipment{
		id:            id,
		workOrderID:   workOrderID,
		courier:       courier,
		waybill:       waybill,
		status:        StatusLabelCreated,
		cost:          cost,
		labelURL:      labelURL,
		isConstructed: true,
	}, nil
}

// RestoreShipment reconstructs a shipment from persistence.
func RestoreShipment(
	id kernel.UUID,
	workOrderID kernel.UUID,
	courier, waybill, labelURL string,
	status Status,
	trackingHistory []TrackingEvent,
	cost float64,
) (*Shipment, error) {
	s, err := NewShipment(id, workOrderID, courier, waybill, labelURL, cost)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	s.status = status
	s.trackingHistory = append([]TrackingEvent(nil), trackingHistory...)
	return s, nil
}

// Validate ensures the Shipment was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// WorkOrderID returns the shipped work order.
func (s *Shipment) WorkOrderID() kernel.UUID { return s.workOrderID }

// Courier returns the carrier name.
func (s *Shipment) Courier() string { return s.courier }

// Waybill returns the carrier-assigned tracking identifier.
func (s *Shipment) Waybill() string { return s.waybill }

// Status returns the current carrier lifecycle state.
func (s *Shipment) Status() Status { return s.status }

// TrackingHistory returns a copy of the append-only event list, oldest first.
func (s *Shipment) TrackingHistory() []TrackingEvent {
	return append([]TrackingEvent(nil), s.trackingHistory...)
}

// Cost returns the booking cost.
func (s *Shipment) Cost() float64 { return s.cost }

// LabelURL returns the carrier label reference.
func (s *Shipment) LabelURL() string { return s.labelURL }

// ApplyTrackingUpdate sets the shipment status and appends the event to the
// tracking history. History entries are never removed.
func (s *Shipment) ApplyTrackingUpdate(status Status, event TrackingEvent) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	s.trackingHistory = append(s.trackingHistory, event)
	return nil
}

// IsDelivered reports whether the carrier confirmed delivery.
func (s *Shipment) IsDelivered() bool {
	return s.status == StatusDelivered
}
