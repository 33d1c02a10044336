// Package notify delivers lead notifications: emails through Resend (or the
// log when no provider is configured) and event messages to a Telegram chat.
package notify

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NotificationError collects every channel that failed for one lead.
type NotificationError struct {
	LeadID uuid.UUID
	Errs   []error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed for lead %s: %v", e.LeadID, errors.Join(e.Errs...))
}

func (e *NotificationError) Unwrap() []error {
	return e.Errs
}
