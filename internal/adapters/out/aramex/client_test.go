package aramex_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/adapters/out/aramex"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) aramex.Config {
	return aramex.Config{
		BaseURL:        baseURL,
		APIKey:         "key",
		Secret:         "secret",
		AccountNumber:  "60500000",
		ShipperName:    "Nilotic Suits",
		ShipperAddress: "Nairobi, Kenya",
		ShipperPhone:   "+254700000000",
	}
}

func testDetails() ports.CarrierShipmentDetails {
	return ports.CarrierShipmentDetails{
		RecipientName:    "Akech Deng",
		RecipientAddress: "Hai Malakal",
		RecipientCity:    "Juba",
		RecipientCountry: "SS",
		RecipientPhone:   "+211912000000",
		WeightKg:         2.5,
		Description:      "Two piece suit",
	}
}

func TestCreateShipment_Success(t *testing.T) {
	var captured map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shipments/create", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("API-KEY"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"Shipments": []map[string]any{{
				"ID":            "WB-12345",
				"ShipmentLabel": map[string]any{"LabelURL": "https://labels.example.com/WB-12345.pdf"},
				"TotalAmount":   42.5,
			}},
		})
	}))
	defer server.Close()

	client := aramex.NewClient(testConfig(server.URL), server.Client())

	booking, err := client.CreateShipment(context.Background(), testDetails())
	require.NoError(t, err)

	assert.Equal(t, "WB-12345", booking.Waybill)
	assert.Equal(t, "https://labels.example.com/WB-12345.pdf", booking.LabelURL)
	assert.InDelta(t, 42.5, booking.Cost, 0.001)

	clientInfo, ok := captured["ClientInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "60500000", clientInfo["AccountNumber"])

	shipments, ok := captured["Shipments"].([]any)
	require.True(t, ok)
	require.Len(t, shipments, 1)
	shipment := shipments[0].(map[string]any)
	consignee := shipment["Consignee"].(map[string]any)
	assert.Equal(t, "Akech Deng", consignee["Name"])
	assert.Equal(t, "SS", consignee["CountryCode"])
	details := shipment["Details"].(map[string]any)
	assert.InDelta(t, 2.5, details["Weight"].(float64), 0.001)
}

func TestCreateShipment_CarrierError_ReturnsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := aramex.NewClient(testConfig(server.URL), server.Client())

	_, err := client.CreateShipment(context.Background(), testDetails())
	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
}

func TestCreateShipment_EmptyResponse_ReturnsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"Shipments": []any{}})
	}))
	defer server.Close()

	client := aramex.NewClient(testConfig(server.URL), server.Client())

	_, err := client.CreateShipment(context.Background(), testDetails())
	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
}

func TestCreateShipment_CancelledContext_ReturnsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	client := aramex.NewClient(testConfig(server.URL), server.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateShipment(ctx, testDetails())
	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
}
