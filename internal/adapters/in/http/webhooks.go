package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/measurement"
	"atelier/internal/core/domain/model/workorder"

	"github.com/labstack/echo/v4"
)

const (
	headerOrderSignature   = "X-WC-Webhook-Signature"
	headerFormSignature    = "X-Formbricks-Signature"
	headerCarrierSignature = "X-Aramex-Signature"
)

// verifySignature checks an HMAC-SHA256 signature over the raw request body.
// A missing secret means the endpoint was never provisioned, so every request
// is rejected. The header may carry the digest hex or base64 encoded.
func verifySignature(body []byte, secret, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	if decoded, err := hex.DecodeString(signature); err == nil && hmac.Equal(decoded, expected) {
		return true
	}
	if decoded, err := base64.StdEncoding.DecodeString(signature); err == nil && hmac.Equal(decoded, expected) {
		return true
	}
	return false
}

func webhookUnauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, apiError{
		Code:    http.StatusUnauthorized,
		Message: "webhook signature verification failed",
	})
}

type webhookAccepted struct {
	Success bool `json:"success"`
}

type externalOrderPayload struct {
	ID      int64 `json:"id"`
	Billing struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Country   string `json:"country"`
		City      string `json:"city"`
	} `json:"billing"`
	LineItems []struct {
		Name string `json:"name"`
	} `json:"line_items"`
}

// IngestExternalOrder receives a storefront order webhook and creates the
// matching work order. Redeliveries of an already ingested order succeed
// without creating a duplicate.
func (s *Server) IngestExternalOrder(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "request body could not be read")
	}

	signature := ctx.Request().Header.Get(headerOrderSignature)
	if !verifySignature(body, s.webhookSecrets.Orders, signature) {
		return webhookUnauthorized(ctx)
	}

	var payload externalOrderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}
	if payload.ID == 0 {
		return badRequest(ctx, "order id is required")
	}

	customer, err := workorder.NewCustomer(
		payload.Billing.FirstName+" "+payload.Billing.LastName,
		payload.Billing.Email,
		payload.Billing.Phone,
		payload.Billing.Country,
		payload.Billing.City,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	lineItems := make([]string, 0, len(payload.LineItems))
	for _, item := range payload.LineItems {
		lineItems = append(lineItems, item.Name)
	}

	cmd, err := commands.NewIngestExternalOrderCommand(
		kernel.NewUUID(),
		fmt.Sprintf("WC-%d", payload.ID),
		customer,
		0,
		lineItems,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.ingestExternalOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, webhookAccepted{Success: true})
}

type webhookMeasurementAccepted struct {
	Success       bool   `json:"success"`
	MeasurementID string `json:"measurementId"`
}

type externalMeasurementPayload struct {
	ResponseID  string             `json:"responseId"`
	WorkOrderID string             `json:"workOrderId"`
	Data        map[string]float64 `json:"data"`
	Photos      []string           `json:"photos"`
}

// ImportExternalMeasurement receives a completed measurement form from the
// external form provider and records it against the work order, advancing it
// to measurement_submitted. The submission is attributed to the system actor;
// the customer filling the form is not a principal.
func (s *Server) ImportExternalMeasurement(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "request body could not be read")
	}

	signature := ctx.Request().Header.Get(headerFormSignature)
	if !verifySignature(body, s.webhookSecrets.Measurements, signature) {
		return webhookUnauthorized(ctx)
	}

	var payload externalMeasurementPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}
	if payload.WorkOrderID == "" {
		return badRequest(ctx, "work order id is required")
	}

	workOrderID, err := kernel.UUIDFromString(payload.WorkOrderID)
	if err != nil {
		return badRequest(ctx, "work order id is not a valid UUID")
	}

	measurementID := kernel.NewUUID()
	cmd, err := commands.NewSubmitMeasurementCommand(
		measurementID, workOrderID, measurement.SourceExternalForm,
		payload.Data, payload.Photos, commands.SystemActor())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.submitMeasurementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, webhookMeasurementAccepted{
		Success:       true,
		MeasurementID: measurementID.String(),
	})
}

type carrierUpdatePayload struct {
	Waybill        string `json:"waybill"`
	Status         string `json:"status"`
	UpdateCode     string `json:"updateCode"`
	UpdateDateTime string `json:"updateDateTime"`
	Comments       string `json:"comments"`
}

// ApplyCarrierUpdate receives a courier tracking webhook and applies the
// status update to the matching shipment.
func (s *Server) ApplyCarrierUpdate(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "request body could not be read")
	}

	signature := ctx.Request().Header.Get(headerCarrierSignature)
	if !verifySignature(body, s.webhookSecrets.Carrier, signature) {
		return webhookUnauthorized(ctx)
	}

	var payload carrierUpdatePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return badRequest(ctx, "request body is not valid JSON")
	}

	occurredAt := time.Now().UTC()
	if payload.UpdateDateTime != "" {
		if parsed, parseErr := time.Parse(time.RFC3339, payload.UpdateDateTime); parseErr == nil {
			occurredAt = parsed
		}
	}

	cmd, err := commands.NewApplyCarrierUpdateCommand(
		payload.Waybill, payload.UpdateCode, payload.Status, occurredAt, payload.Comments)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.applyCarrierUpdateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, webhookAccepted{Success: true})
}
