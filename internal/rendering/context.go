package rendering

import (
	"net/url"
	"strings"

	"github.com/jonathan/portfolio-site/internal/types"
)

// RenderContext carries per-request inputs shared by every renderer.
type RenderContext struct {
	Locale        types.Locale
	DefaultLocale types.Locale
	Document      *types.Document

	// ProjectFilter and ProjectSort apply to project grids that expose
	// filter or sort options.
	ProjectFilter string
	ProjectSort   types.SortOrder
}

// NewRenderContext returns a context for doc in locale. An unsupported
// locale falls back to the document default.
func NewRenderContext(doc *types.Document, locale types.Locale) *RenderContext {
	rc := &RenderContext{
		Locale:        locale,
		DefaultLocale: doc.DefaultLanguage,
		Document:      doc,
		ProjectFilter: types.FilterAll,
		ProjectSort:   types.SortNewest,
	}
	if !doc.SupportsLanguage(locale) {
		rc.Locale = doc.DefaultLanguage
	}
	return rc
}

// Text resolves bilingual text for the request locale.
func (rc *RenderContext) Text(t types.BilingualText) string {
	return t.Resolve(rc.Locale, rc.DefaultLocale)
}

// List resolves a bilingual list for the request locale.
func (rc *RenderContext) List(l types.BilingualList) []string {
	return l.Resolve(rc.Locale, rc.DefaultLocale)
}

// Href keeps the request locale on internal links. External and anchor
// links are returned unchanged.
func (rc *RenderContext) Href(path string) string {
	if path == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return path
	}
	if rc.Locale == rc.DefaultLocale {
		return path
	}
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	q.Set("lang", string(rc.Locale))
	u.RawQuery = q.Encode()
	return u.String()
}

// PageHref returns the localized path of page.
func (rc *RenderContext) PageHref(page *types.Page) string {
	slug := rc.Text(page.Slug)
	return rc.Href("/" + strings.Trim(slug, "/"))
}

// LocaleHref returns the current path switched to locale.
func (rc *RenderContext) LocaleHref(path string, locale types.Locale) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	if locale == rc.DefaultLocale {
		q.Del("lang")
	} else {
		q.Set("lang", string(locale))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// queryHref returns a query-only link selecting a project filter and sort
// on the current page.
func (rc *RenderContext) queryHref(filter, sort string) string {
	q := url.Values{}
	if filter != "" && filter != types.FilterAll {
		q.Set("category", filter)
	}
	if sort != "" && sort != string(types.SortNewest) {
		q.Set("sort", sort)
	}
	if rc.Locale != rc.DefaultLocale {
		q.Set("lang", string(rc.Locale))
	}
	if len(q) == 0 {
		return "?"
	}
	return "?" + q.Encode()
}
