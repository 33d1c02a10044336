package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/resend/resend-go/v2"
)

// DefaultFrom is the sender used when none is configured.
const DefaultFrom = "noreply@example.com"

// Message is one outbound email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer sends emails.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ResendMailer sends email through the Resend API.
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer creates a mailer for apiKey. httpClient may be nil.
func NewResendMailer(apiKey string, httpClient *http.Client) *ResendMailer {
	return &ResendMailer{client: resend.NewCustomClient(httpClient, apiKey)}
}

// WithBaseURL points the mailer at another API host.
func (m *ResendMailer) WithBaseURL(raw string) (*ResendMailer, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid resend base url: %w", err)
	}
	m.client.BaseURL = u
	return m, nil
}

// Send sends msg.
func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("email has no recipient")
	}
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	sent, err := m.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("resend: failed to send %q: %w", msg.Subject, err)
	}
	log.Printf("[notify] email %q sent (id=%s)", msg.Subject, sent.Id)
	return nil
}

// LogMailer logs emails instead of sending them.
type LogMailer struct{}

// Send logs msg and always succeeds.
func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Printf("[notify] email provider not configured; would send %q from %s to %s (%d bytes)",
		msg.Subject, msg.From, msg.To, len(msg.HTML))
	return nil
}
