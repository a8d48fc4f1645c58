// Package brevo implements the outbound notification channel against the
// Brevo transactional email API. Templates are rendered here; the engine only
// picks a template and supplies the payload.
package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

const integrationName = "brevo"

// Config holds the notification channel settings.
type Config struct {
	BaseURL   string
	APIKey    string
	FromName  string
	FromEmail string
}

// Notifier sends templated transactional emails.
type Notifier struct {
	config     Config
	httpClient *http.Client
	templates  map[ports.Template]*template.Template
}

// NewNotifier creates a notification channel. A nil httpClient falls back to
// a client with a 10 second timeout: dispatch is best-effort and must never
// stall the caller for long.
func NewNotifier(config Config, httpClient *http.Client) (*Notifier, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	templates := make(map[ports.Template]*template.Template, len(templateBodies))
	for name, body := range templateBodies {
		parsed, err := template.New(string(name)).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = parsed
	}

	return &Notifier{
		config:     config,
		httpClient: httpClient,
		templates:  templates,
	}, nil
}

type sendEmailRequest struct {
	Sender      emailAddress   `json:"sender"`
	To          []emailAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type emailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send renders the notification's template and posts it to the channel.
// Unknown templates and transport failures surface as UpstreamFailureError;
// the caller decides whether to swallow them.
func (n *Notifier) Send(ctx context.Context, notification ports.Notification) error {
	tmpl, ok := n.templates[notification.Template]
	if !ok {
		return errs.NewUpstreamFailureError(integrationName,
			fmt.Errorf("unknown template %q", notification.Template))
	}

	var html bytes.Buffer
	if err := tmpl.Execute(&html, notification.Data); err != nil {
		return errs.NewUpstreamFailureError(integrationName, err)
	}

	payload := sendEmailRequest{
		Sender:      emailAddress{Name: n.config.FromName, Email: n.config.FromEmail},
		To:          []emailAddress{{Email: notification.To}},
		Subject:     notification.Subject,
		HTMLContent: html.String(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errs.NewUpstreamFailureError(integrationName, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, n.config.BaseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return errs.NewUpstreamFailureError(integrationName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", n.config.APIKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errs.NewUpstreamFailureError(integrationName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return errs.NewUpstreamFailureError(integrationName,
			fmt.Errorf("unexpected status %s", resp.Status))
	}
	return nil
}
