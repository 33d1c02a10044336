package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/jonathan/portfolio-site/internal/types"
)

const emailStyle = `body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { color: white; padding: 20px; border-radius: 8px 8px 0 0; }
.content { background: #f9fafb; padding: 20px; border-radius: 0 0 8px 8px; }
.label { font-weight: bold; color: #374151; }
.alert { background: #fef3c7; padding: 10px; border-left: 4px solid #f59e0b; margin-bottom: 15px; }`

type field struct {
	label, value string
}

// emailLayout wraps body in the shared email document.
func emailLayout(title, headerColor string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html><head><meta charset="utf-8"><style>%s</style></head><body><div class="container"><div class="header" style="background: %s"><h2>%s</h2></div><div class="content">`,
			emailStyle, headerColor, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div></body></html>`)
		return err
	})
}

func fieldList(fields []field) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		for _, f := range fields {
			if f.value == "" {
				continue
			}
			b.WriteString(`<div class="field"><div class="label">`)
			b.WriteString(templ.EscapeString(f.label))
			b.WriteString(`:</div><div class="value">`)
			b.WriteString(strings.ReplaceAll(templ.EscapeString(f.value), "\n", "<br>"))
			b.WriteString(`</div></div>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func paragraph(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>"+templ.EscapeString(text)+"</p>")
		return err
	})
}

func leadFields(lead types.ContactSubmission) []field {
	return []field{
		{"Name", lead.Name},
		{"Email", lead.Email},
		{"Company", lead.Company},
		{"Budget", string(lead.Budget)},
		{"Preferred start date", lead.PreferredStartDate},
		{"Message", lead.Message},
	}
}

// OwnerEmail notifies the site owner of a new lead.
func OwnerEmail(lead types.ContactSubmission) templ.Component {
	return emailLayout("New Contact Form Submission", "#0ea5e9", templ.Join(
		fieldList(leadFields(lead)),
		paragraph("Lead ID: "+lead.ID.String()),
	))
}

// CVRequestEmail notifies the site owner that a lead asked for the CV.
func CVRequestEmail(lead types.ContactSubmission) templ.Component {
	alert := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="alert"><strong>Action Required:</strong> Someone has requested your CV.</div>`)
		return err
	})
	return emailLayout("CV Request Notification", "#10b981", templ.Join(
		alert,
		fieldList(leadFields(lead)),
		paragraph("Please review and respond to this CV request."),
	))
}

// AutoReplyEmail acknowledges a submission to the submitter. siteURL, when
// set, adds a link back to the site.
func AutoReplyEmail(lead types.ContactSubmission, siteName, siteURL string) templ.Component {
	parts := []templ.Component{
		paragraph("Hi " + lead.Name + ","),
		paragraph("Thanks for your message. I have received it and will get back to you within two business days."),
		paragraph("Best regards,"),
		paragraph(siteName),
	}
	if siteURL != "" {
		parts = append(parts, link(siteURL, siteURL))
	}
	return emailLayout("Thanks for reaching out", "#2563eb", templ.Join(parts...))
}

func link(href, text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p><a href="`+templ.EscapeString(href)+`">`+templ.EscapeString(text)+"</a></p>")
		return err
	})
}

// RenderString renders c to a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
