package notify

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/portfolio-site/internal/types"
)

// ContactEvent is the Telegram event emitted for each accepted submission.
const ContactEvent = "Contact Form Submission"

// Config holds the addresses used for lead notifications. An empty Owner or
// SiteName is read from the content document on every notification.
type Config struct {
	From      string
	Owner     string
	SiteName  string
	SiteURL   string
	AutoReply bool
	Document  func(ctx context.Context) (*types.Document, error)
}

// EventLogger forwards events to an external messaging channel.
type EventLogger interface {
	SendLog(ctx context.Context, event string, meta map[string]any) error
}

// Notifier sends the owner notification, the optional auto-reply and the
// Telegram event for a lead. Every channel is attempted.
type Notifier struct {
	mailer Mailer
	events EventLogger
	cfg    Config
}

// NewNotifier creates a notifier. A nil mailer logs emails; a nil events
// logger disables Telegram messages.
func NewNotifier(mailer Mailer, events EventLogger, cfg Config) *Notifier {
	if mailer == nil {
		mailer = LogMailer{}
	}
	if cfg.From == "" {
		cfg.From = DefaultFrom
	}
	return &Notifier{mailer: mailer, events: events, cfg: cfg}
}

// NotifyLead notifies about lead. It returns a *NotificationError listing
// each channel that failed.
func (n *Notifier) NotifyLead(ctx context.Context, lead types.ContactSubmission) error {
	var errs []error
	owner, siteName := n.siteDetails(ctx)

	if err := n.sendOwnerEmail(ctx, lead, owner); err != nil {
		errs = append(errs, err)
	}
	if n.cfg.AutoReply {
		if err := n.sendAutoReply(ctx, lead, siteName); err != nil {
			errs = append(errs, err)
		}
	}
	if n.events != nil {
		if err := n.events.SendLog(ctx, ContactEvent, leadMeta(lead)); err != nil {
			log.Printf("[notify] telegram event for lead %s failed: %v", lead.ID, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &NotificationError{LeadID: lead.ID, Errs: errs}
	}
	return nil
}

// siteDetails returns the owner address and site name, falling back to the
// current content document's globals.
func (n *Notifier) siteDetails(ctx context.Context) (owner, siteName string) {
	owner, siteName = n.cfg.Owner, n.cfg.SiteName
	if (owner != "" && siteName != "") || n.cfg.Document == nil {
		return owner, siteName
	}
	doc, err := n.cfg.Document(ctx)
	if err != nil || doc == nil {
		log.Printf("[notify] content unavailable for site details: %v", err)
		return owner, siteName
	}
	if owner == "" {
		owner = doc.Globals.Email
	}
	if siteName == "" {
		siteName = doc.Globals.SiteName.Resolve(doc.DefaultLanguage, doc.DefaultLanguage)
	}
	return owner, siteName
}

func (n *Notifier) sendOwnerEmail(ctx context.Context, lead types.ContactSubmission, owner string) error {
	subject := "Contact Form: " + lead.Name
	tmpl := OwnerEmail(lead)
	if lead.CVRequest {
		subject = "CV Request: " + lead.Name
		tmpl = CVRequestEmail(lead)
	}

	body, err := RenderString(ctx, tmpl)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{
		From:    n.cfg.From,
		To:      owner,
		ReplyTo: lead.Email,
		Subject: subject,
		HTML:    body,
	})
}

func (n *Notifier) sendAutoReply(ctx context.Context, lead types.ContactSubmission, siteName string) error {
	if siteName == "" {
		siteName = n.cfg.From
	}
	body, err := RenderString(ctx, AutoReplyEmail(lead, siteName, n.cfg.SiteURL))
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{
		From:    n.cfg.From,
		To:      lead.Email,
		Subject: "Thanks for your message",
		HTML:    body,
	})
}

func leadMeta(lead types.ContactSubmission) map[string]any {
	return map[string]any{
		"id":          lead.ID.String(),
		"name":        lead.Name,
		"email":       lead.Email,
		"company":     lead.Company,
		"budget":      string(lead.Budget),
		"isCVRequest": lead.CVRequest,
		"timestamp":   lead.CreatedAt.UTC().Format(time.RFC3339),
	}
}
