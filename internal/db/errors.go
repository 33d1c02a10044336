package db

import (
	"errors"
	"fmt"
)

// PersistenceError reports a failed read or write against a lead store.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

var errDuplicateLead = errors.New("lead already exists")
