package ports

import "context"

// Template identifies a notification template on the channel side. The engine
// only picks the template and supplies the payload; rendering happens in the
// channel.
type Template string

const (
	TemplateMeasurementSubmitted Template = "measurementSubmitted"
	TemplateMeasurementApproved  Template = "measurementApproved"
	TemplateProductionStarted    Template = "productionStarted"
	TemplateQCPassed             Template = "qcPassed"
	TemplateQCFailed             Template = "qcFailed"
	TemplateShipmentCreated      Template = "shipmentCreated"
	TemplateReadyForPickup       Template = "readyForPickup"
	TemplateOrderDelivered       Template = "orderDelivered"
	TemplateTaskDueSoon          Template = "taskDueSoon"
	TemplateTaskOverdue          Template = "taskOverdue"
)

// Notification is a templated send request for the notification channel.
type Notification struct {
	To       string
	Subject  string
	Template Template
	Data     map[string]any
}

// Notifier is the outbound notification channel. Dispatch is fire-and-forget
// from the engine's point of view: callers log failures and never let them
// fail an otherwise-successful business operation.
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}
