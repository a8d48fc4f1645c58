package ports

import "context"

// CarrierShipmentDetails is the booking request handed to the carrier
// integration.
type CarrierShipmentDetails struct {
	RecipientName    string
	RecipientAddress string
	RecipientCity    string
	RecipientCountry string
	RecipientPhone   string
	WeightKg         float64
	Description      string
}

// CarrierBooking is the result of a successful carrier booking.
type CarrierBooking struct {
	Waybill  string
	LabelURL string
	Cost     float64
}

// CarrierClient is the outbound carrier integration. CreateShipment must be
// bounded by the context deadline; a timeout is a failure, never an ambiguous
// success. Failures surface as UpstreamFailureError and abort the shipment
// operation.
type CarrierClient interface {
	CreateShipment(ctx context.Context, details CarrierShipmentDetails) (CarrierBooking, error)
}
