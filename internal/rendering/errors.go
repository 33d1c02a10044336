// Package rendering turns content pages into HTML through section and
// component registries.
package rendering

import "fmt"

// Node kinds reported by UnknownKindError
const (
	KindSection   = "section"
	KindComponent = "component"
)

// UnknownKindError describes a node skipped during rendering because its
// tag has no registered renderer or its section is absent.
type UnknownKindError struct {
	Kind   string
	Tag    string
	ID     string
	Reason string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("skipped %s %q (%s): %s", e.Kind, e.ID, e.Tag, e.Reason)
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
