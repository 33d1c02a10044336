// Package contact handles inbound contact-form submissions: validation,
// per-identity rate limiting, lead persistence and owner notification.
//
// Only ValidationError and RateLimitedError ever reach the caller. Failures
// after a submission has been accepted are recorded in a DeliveryReport and
// logged.
package contact

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/portfolio-site/internal/server/ratelimit"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every invalid field of a submission in field order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the invalid fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// RateLimitedError rejects a submission whose identity exhausted its window.
type RateLimitedError struct {
	Info ratelimit.Info
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded: retry after %s", e.Info.RetryAfter.Round(time.Second))
}
