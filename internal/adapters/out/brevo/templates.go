package brevo

import "atelier/internal/core/ports"

// templateBodies holds the HTML bodies, keyed by the template names the
// engine selects. Payload keys follow the notification Data contract.
var templateBodies = map[ports.Template]string{
	ports.TemplateMeasurementSubmitted: `
		<h2>Measurement Submitted</h2>
		<p>Hello,</p>
		<p>Measurements have been submitted for work order <strong>{{.workOrderId}}</strong>.</p>
		<p>Customer: {{.customerName}} ({{.customerEmail}})</p>
		<p>Please review and approve.</p>
	`,
	ports.TemplateMeasurementApproved: `
		<h2>Measurements Approved</h2>
		<p>Hello,</p>
		<p>Measurements for work order <strong>{{.workOrderId}}</strong> have been approved.</p>
		<p>Customer: {{.customerName}}</p>
	`,
	ports.TemplateProductionStarted: `
		<h2>Production Started</h2>
		<p>Hello {{.customerName}},</p>
		<p>Your order <strong>{{.workOrderId}}</strong> is now in production.</p>
	`,
	ports.TemplateQCPassed: `
		<h2>QC Inspection Passed</h2>
		<p>Work order <strong>{{.workOrderId}}</strong> passed quality control.</p>
		<p>Ready to ship.</p>
	`,
	ports.TemplateQCFailed: `
		<h2>QC Inspection Failed</h2>
		<p>Work order <strong>{{.workOrderId}}</strong> failed quality control.</p>
		<p>A rework task has been created.</p>
	`,
	ports.TemplateShipmentCreated: `
		<h2>Your Order Has Been Shipped</h2>
		<p>Hello {{.customerName}},</p>
		<p>Your order <strong>{{.workOrderId}}</strong> has been shipped.</p>
		<p>Tracking number: <strong>{{.waybill}}</strong></p>
		<p>Courier: {{.courier}}</p>
	`,
	ports.TemplateReadyForPickup: `
		<h2>Order Ready for Pickup</h2>
		<p>Hello {{.customerName}},</p>
		<p>Your order <strong>{{.workOrderId}}</strong> is ready for pickup.</p>
		<p>Please contact us to schedule pickup.</p>
	`,
	ports.TemplateOrderDelivered: `
		<h2>Order Delivered</h2>
		<p>Hello {{.customerName}},</p>
		<p>Your order <strong>{{.workOrderId}}</strong> has been delivered.</p>
		<p>Waybill: {{.waybill}}</p>
		<p>Thank you!</p>
	`,
	ports.TemplateTaskDueSoon: `
		<h2>Task Reminder: Due Soon</h2>
		<p>Task "<strong>{{.title}}</strong>" is due on {{.dueAt}}.</p>
		<p>Work Order: {{.workOrderId}}</p>
		<p>Please complete this task on time.</p>
	`,
	ports.TemplateTaskOverdue: `
		<h2>Task Overdue</h2>
		<p>Task "<strong>{{.title}}</strong>" was due on {{.dueAt}}.</p>
		<p>Work Order: {{.workOrderId}}</p>
		<p>Please complete this task as soon as possible.</p>
	`,
}
