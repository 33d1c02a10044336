package server

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/jonathan/portfolio-site/internal/rendering"
	"github.com/jonathan/portfolio-site/internal/types"
)

// handlePage renders the page whose localized slug matches the path.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := s.deps.Content.Load(ctx)
	if err != nil {
		s.unavailable(w, err)
		return
	}

	rc := s.renderContext(r, doc)
	slug := strings.Trim(chi.URLParam(r, "slug"), "/")
	page, err := s.deps.Content.PageBySlug(ctx, rc.Locale, slug)
	if err != nil {
		s.unavailable(w, err)
		return
	}
	if page == nil {
		s.notFound(w, r, rc)
		return
	}

	tree, err := s.deps.Renderer.RenderPage(rc, page)
	if err != nil {
		log.Printf("[server] failed to render page %q: %v", page.ID, err)
		s.errorPage(w, err)
		return
	}
	for _, skipped := range tree.Skipped {
		log.Printf("[render] skipped %v", skipped)
	}
	s.htmlResponse(w, http.StatusOK, rendering.Shell(rc, rendering.PageMeta(rc, page, r.URL.RequestURI()), tree.Body))
}

// handleProject renders the detail page of one project.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := s.deps.Content.Load(ctx)
	if err != nil {
		s.unavailable(w, err)
		return
	}
	rc := s.renderContext(r, doc)

	project, err := s.deps.Content.ProjectBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		s.unavailable(w, err)
		return
	}
	if project == nil {
		s.notFound(w, r, rc)
		return
	}

	meta := rendering.ShellMeta{
		Title:       rc.Text(project.Title),
		Description: rc.Text(project.Description),
		Path:        r.URL.RequestURI(),
	}
	s.htmlResponse(w, http.StatusOK, rendering.Shell(rc, meta, rendering.ProjectDetail(rc, project)))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		s.errorResponse(w, http.StatusNotFound, "Not found")
		return
	}
	doc, err := s.deps.Content.Load(r.Context())
	if err != nil {
		s.unavailable(w, err)
		return
	}
	s.notFound(w, r, s.renderContext(r, doc))
}

// renderContext applies locale negotiation and the project grid query.
func (s *Server) renderContext(r *http.Request, doc *types.Document) *rendering.RenderContext {
	rc := rendering.NewRenderContext(doc, negotiateLocale(r, doc))
	q := r.URL.Query()
	if category := q.Get("category"); category != "" {
		rc.ProjectFilter = category
	}
	rc.ProjectSort = types.ParseSortOrder(q.Get("sort"))
	return rc
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, rc *rendering.RenderContext) {
	meta := rendering.ShellMeta{Title: notFoundTitle(rc), Path: r.URL.RequestURI()}
	s.htmlResponse(w, http.StatusNotFound, rendering.Shell(rc, meta, rendering.NotFound(rc)))
}

func notFoundTitle(rc *rendering.RenderContext) string {
	if rc.Locale == types.LocaleFR {
		return "Page introuvable"
	}
	return "Page not found"
}

func (s *Server) unavailable(w http.ResponseWriter, err error) {
	log.Printf("[server] content unavailable: %v", err)
	s.htmlResponse(w, HTTPStatus(err), rendering.Unavailable())
}

func (s *Server) errorPage(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status != http.StatusServiceUnavailable {
		status = http.StatusInternalServerError
	}
	s.htmlResponse(w, status, rendering.Unavailable())
}

// htmlResponse renders c into a buffer first so a failing component never
// leaves a half-written page.
func (s *Server) htmlResponse(w http.ResponseWriter, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		log.Printf("[server] error rendering HTML: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[server] error writing HTML response: %v", err)
	}
}
