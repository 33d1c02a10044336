package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/portfolio-site/internal/contact"
	"github.com/jonathan/portfolio-site/internal/documents"
	"github.com/jonathan/portfolio-site/internal/types"
)

const internalError = "Internal server error"

// handleContact accepts a contact form submission.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req types.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), "Invalid request body")
		return
	}

	outcome, err := s.deps.Contact.Submit(r.Context(), ClientIdentity(r), req)
	if err != nil {
		s.contactError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": outcome.Message,
		"id":      outcome.ID.String(),
	})
}

func (s *Server) contactError(w http.ResponseWriter, err error) {
	var (
		validation  *contact.ValidationError
		rateLimited *contact.RateLimitedError
	)
	switch {
	case errors.As(err, &validation):
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Validation failed",
			"fields":  validation.Fields,
		})
	case errors.As(err, &rateLimited):
		setRateLimitHeaders(w, rateLimited.Info)
		s.rateLimitResponse(w, rateLimited.Info)
	default:
		log.Printf("[contact] submission failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, internalError)
	}
}

// handleContent serves the content document as JSON.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	raw, err := s.deps.Content.Raw(r.Context())
	if err != nil {
		log.Printf("[server] content unavailable: %v", err)
		s.errorResponse(w, HTTPStatus(err), "Content unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		log.Printf("[server] error writing content: %v", err)
	}
}

// cvDownloadRequest is the body of POST /api/cv-download.
type cvDownloadRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// handleCVDownload streams the CV to a visitor who left an email address.
func (s *Server) handleCVDownload(w http.ResponseWriter, r *http.Request) {
	var req cvDownloadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		s.errorResponse(w, http.StatusBadRequest, "Email is required")
		return
	}
	if s.deps.CV == nil {
		s.errorResponse(w, http.StatusNotFound, "CV not found")
		return
	}

	doc, err := s.deps.CV.Fetch(r.Context())
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "CV not found")
			return
		}
		log.Printf("[cv] failed to fetch CV: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, internalError)
		return
	}

	s.logEvent(r, "CV Download", map[string]any{
		"email":    req.Email,
		"name":     req.Name,
		"document": doc.Name,
	})

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Body); err != nil {
		log.Printf("[cv] error writing CV: %v", err)
	}
}

func (s *Server) handleCVMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusMethodNotAllowed, "Use POST method with email to download CV")
}

// logRequest is the body of POST /api/logs.
type logRequest struct {
	Event string         `json:"event"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// handleLogs forwards a client event to the event channel. Forwarding
// failures are logged and never reported to the client.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Event = strings.TrimSpace(req.Event)
	if req.Event == "" {
		s.errorResponse(w, http.StatusBadRequest, "Event name is required")
		return
	}

	s.logEvent(r, req.Event, req.Meta)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Log sent successfully",
	})
}

func (s *Server) logEvent(r *http.Request, event string, meta map[string]any) {
	if s.deps.Events == nil {
		return
	}
	if err := s.deps.Events.SendLog(r.Context(), event, meta); err != nil {
		log.Printf("[events] failed to forward %q: %v", event, err)
	}
}
