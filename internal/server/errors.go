// Package server provides the HTTP endpoints of the portfolio site.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/portfolio-site/internal/contact"
	"github.com/jonathan/portfolio-site/internal/content"
	"github.com/jonathan/portfolio-site/internal/documents"
)

// ErrBadRequest indicates a malformed request body or missing field
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("bad request: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		badRequest  *ErrBadRequest
		validation  *contact.ValidationError
		rateLimited *contact.RateLimitedError
		loadErr     *content.LoadError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &badRequest), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, documents.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &loadErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
