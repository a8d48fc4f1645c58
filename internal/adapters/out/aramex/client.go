// Package aramex implements the outbound carrier integration against the
// Aramex shipping API.
package aramex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

const integrationName = "aramex"

// Config holds the carrier account settings. The shipper block identifies the
// atelier as the sending party on every booking.
type Config struct {
	BaseURL       string
	APIKey        string
	Secret        string
	AccountNumber string

	ShipperName    string
	ShipperAddress string
	ShipperPhone   string
}

// Client calls the Aramex shipment API over HTTPS. Requests are bounded by
// the context deadline and the HTTP client timeout, whichever fires first.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a carrier client. A nil httpClient falls back to a client
// with a 10 second timeout so a hung carrier endpoint cannot stall a booking
// indefinitely.
func NewClient(config Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

type clientInfo struct {
	AccountNumber string `json:"AccountNumber"`
	UserName      string `json:"UserName"`
	Password      string `json:"Password"`
}

type party struct {
	Name        string `json:"Name"`
	Address     string `json:"Address"`
	City        string `json:"City,omitempty"`
	CountryCode string `json:"CountryCode,omitempty"`
	Phone       string `json:"Phone"`
}

type shipmentDetails struct {
	Weight         float64 `json:"Weight"`
	NumberOfPieces int     `json:"NumberOfPieces"`
	Description    string  `json:"Description"`
}

type shipmentRequest struct {
	Shipper   party           `json:"Shipper"`
	Consignee party           `json:"Consignee"`
	Details   shipmentDetails `json:"Details"`
}

type createShipmentRequest struct {
	ClientInfo clientInfo        `json:"ClientInfo"`
	Shipments  []shipmentRequest `json:"Shipments"`
}

type shipmentLabel struct {
	LabelURL string `json:"LabelURL"`
}

type createdShipment struct {
	ID            string         `json:"ID"`
	ShipmentLabel *shipmentLabel `json:"ShipmentLabel"`
	TotalAmount   float64        `json:"TotalAmount"`
}

type createShipmentResponse struct {
	Shipments []createdShipment `json:"Shipments"`
}

// CreateShipment books one shipment and returns the carrier's waybill, label
// reference and cost. Every failure mode maps to UpstreamFailureError so the
// caller can distinguish carrier trouble from its own validation errors.
func (c *Client) CreateShipment(
	ctx context.Context,
	details ports.CarrierShipmentDetails,
) (ports.CarrierBooking, error) {
	payload := createShipmentRequest{
		ClientInfo: clientInfo{
			AccountNumber: c.config.AccountNumber,
			UserName:      c.config.APIKey,
			Password:      c.config.Secret,
		},
		Shipments: []shipmentRequest{{
			Shipper: party{
				Name:    c.config.ShipperName,
				Address: c.config.ShipperAddress,
				Phone:   c.config.ShipperPhone,
			},
			Consignee: party{
				Name:        details.RecipientName,
				Address:     details.RecipientAddress,
				City:        details.RecipientCity,
				CountryCode: details.RecipientCountry,
				Phone:       details.RecipientPhone,
			},
			Details: shipmentDetails{
				Weight:         details.WeightKg,
				NumberOfPieces: 1,
				Description:    details.Description,
			},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.CarrierBooking{}, errs.NewUpstreamFailureError(integrationName, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.config.BaseURL+"/shipments/create", bytes.NewReader(body))
	if err != nil {
		return ports.CarrierBooking{}, errs.NewUpstreamFailureError(integrationName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-KEY", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.CarrierBooking{}, errs.NewUpstreamFailureError(integrationName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.CarrierBooking{}, errs.NewUpstreamFailureError(integrationName,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	var parsed createShipmentResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ports.CarrierBooking{}, errs.NewUpstreamFailureError(integrationName, err)
	}
	if len(parsed.Shipments) == 0 || parsed.Shipments[0].ID == "" {
		return ports.CarrierBooking{}, errs.NewUpstreamFailureError(integrationName,
			fmt.Errorf("response carries no shipment"))
	}

	booking := ports.CarrierBooking{
		Waybill: parsed.Shipments[0].ID,
		Cost:    parsed.Shipments[0].TotalAmount,
	}
	if parsed.Shipments[0].ShipmentLabel != nil {
		booking.LabelURL = parsed.Shipments[0].ShipmentLabel.LabelURL
	}
	return booking, nil
}
