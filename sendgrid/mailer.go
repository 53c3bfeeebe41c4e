// Package sendgrid implements handbook.Mailer with the SendGrid v3 API.
package sendgrid

import (
	"context"
	"fmt"

	"github.com/fwojciec/handbook"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// DefaultHost is the SendGrid API host.
const DefaultHost = "https://api.sendgrid.com"

const sendEndpoint = "/v3/mail/send"

// Ensure Mailer implements handbook.Mailer at compile time.
var _ handbook.Mailer = (*Mailer)(nil)

// Mailer sends plain-text messages through SendGrid.
type Mailer struct {
	apiKey string
	host   string
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithHost overrides the API host. Used to point the mailer at a test server.
func WithHost(host string) Option {
	return func(m *Mailer) {
		m.host = host
	}
}

// NewMailer creates a Mailer authenticating with apiKey.
func NewMailer(apiKey string, opts ...Option) *Mailer {
	m := &Mailer{
		apiKey: apiKey,
		host:   DefaultHost,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send posts msg to the mail-send endpoint and returns the response status.
// Non-2xx statuses are returned as codes, not errors.
func (m *Mailer) Send(ctx context.Context, msg *handbook.Message) (int, error) {
	from := mail.NewEmail("", msg.From)
	to := mail.NewEmail("", msg.To)
	body := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	req := sendgrid.GetRequest(m.apiKey, sendEndpoint, m.host)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(body)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("sendgrid request: %w", err)
	}
	return resp.StatusCode, nil
}
