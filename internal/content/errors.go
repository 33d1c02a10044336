// Package content loads, caches and exposes the site content document.
package content

import "fmt"

// LoadError reports a content document that is missing, unreadable or malformed.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("content load error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("content load error for %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
