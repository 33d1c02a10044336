package rendering

import (
	"sort"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/jonathan/portfolio-site/internal/types"
)

// ShellMeta describes the document around a rendered body.
type ShellMeta struct {
	Title       string
	Description string
	// Path is the request path, used by the language switcher.
	Path string
}

// PageMeta builds the shell metadata for a content page.
func PageMeta(rc *RenderContext, page *types.Page, path string) ShellMeta {
	meta := ShellMeta{Title: rc.Text(page.Title), Path: path}
	if page.Meta != nil {
		meta.Description = rc.Text(page.Meta.Description)
	}
	if meta.Description == "" {
		meta.Description = rc.Text(rc.Document.Globals.About)
	}
	return meta
}

var themeVariables = []struct {
	name  string
	value func(types.ThemeColors) string
}{
	{"--color-primary", func(t types.ThemeColors) string { return t.PrimaryColor }},
	{"--color-secondary", func(t types.ThemeColors) string { return t.SecondaryColor }},
	{"--color-background", func(t types.ThemeColors) string { return t.Background }},
	{"--color-surface", func(t types.ThemeColors) string { return t.Surface }},
	{"--color-text", func(t types.ThemeColors) string { return t.Text }},
	{"--color-accent", func(t types.ThemeColors) string { return t.AccentColor }},
}

// Shell renders a full HTML document with navigation, language switcher
// and footer around body.
func Shell(rc *RenderContext, meta ShellMeta, body templ.Component) templ.Component {
	globals := rc.Document.Globals
	siteName := rc.Text(globals.SiteName)
	return componentFunc(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", string(rc.Locale))
		h.open("head")
		h.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		title := siteName
		if meta.Title != "" {
			title = meta.Title + " | " + siteName
		}
		h.element("title", title)
		if meta.Description != "" {
			h.open("meta", "name", "description", "content", meta.Description)
		}
		writeTheme(h, globals.Theme)
		h.close("head")

		h.open("body")
		h.open("header", "class", "site-header")
		h.open("nav", "class", "nav")
		h.element("a", siteName, "class", "nav__brand", "href", rc.Href("/"))
		h.open("ul", "class", "nav__links")
		for i := range rc.Document.Pages {
			p := &rc.Document.Pages[i]
			h.open("li")
			h.element("a", rc.Text(p.Title), "href", rc.PageHref(p))
			h.close("li")
		}
		h.close("ul")
		if len(rc.Document.Languages) > 1 {
			h.open("ul", "class", "nav__languages")
			for _, l := range rc.Document.Languages {
				class := "lang"
				if l == rc.Locale {
					class = "lang lang--active"
				}
				h.open("li")
				h.element("a", string(l), "class", class, "hreflang", string(l), "href", rc.LocaleHref(meta.Path, l))
				h.close("li")
			}
			h.close("ul")
		}
		h.close("nav")
		h.close("header")

		h.open("main", "id", "main")
		h.component(body)
		h.close("main")

		writeFooter(h, rc, siteName)
		h.close("body")
		h.close("html")
	})
}

func writeTheme(h *htmlWriter, theme types.ThemeColors) {
	h.raw("<style>:root{")
	for _, v := range themeVariables {
		if value := CSSValue(v.value(theme)); value != "" {
			h.raw(v.name + ":" + value + ";")
		}
	}
	h.raw("}</style>")
}

func writeFooter(h *htmlWriter, rc *RenderContext, siteName string) {
	globals := rc.Document.Globals
	h.open("footer", "class", "site-footer")
	h.open("p")
	h.text("© " + strconv.Itoa(time.Now().Year()) + " " + siteName)
	if job := rc.Text(globals.JobTitle); job != "" {
		h.text(" · " + job)
	}
	h.close("p")
	if len(globals.Socials) > 0 {
		keys := make([]string, 0, len(globals.Socials))
		for k := range globals.Socials {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		h.open("ul", "class", "socials")
		for _, k := range keys {
			link := globals.Socials[k]
			label := link.Label
			if label == "" {
				label = k
			}
			h.open("li")
			h.element("a", label, "href", link.URL, "rel", "noopener me", "target", "_blank")
			h.close("li")
		}
		h.close("ul")
	}
	h.close("footer")
}

// NotFound renders the "page not found" body.
func NotFound(rc *RenderContext) templ.Component {
	return componentFunc(func(h *htmlWriter) {
		h.open("section", "class", "section section--not-found")
		h.open("div", "class", "container")
		h.element("h1", uiText(rc, "Page not found", "Page introuvable"))
		h.element("p", uiText(rc, "The page you are looking for does not exist.", "La page que vous cherchez n'existe pas."))
		h.element("a", uiText(rc, "Back to home", "Retour à l'accueil"), "class", "btn btn--primary", "href", rc.Href("/"))
		h.close("div")
		h.close("section")
	})
}

// Unavailable renders a self-contained document shown when the content
// document cannot be loaded. It depends on nothing from the content.
func Unavailable() templ.Component {
	return componentFunc(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Temporarily unavailable</title></head><body>`)
		h.open("main", "class", "unavailable")
		h.element("h1", "Temporarily unavailable")
		h.element("p", "This site is being updated. Please try again in a moment.")
		h.close("main")
		h.raw("</body></html>")
	})
}

// ProjectDetail renders the detail body for one project.
func ProjectDetail(rc *RenderContext, p *types.ProjectItem) templ.Component {
	return componentFunc(func(h *htmlWriter) {
		h.open("section", "id", AnchorID(p.ID), "class", "section section--project-detail")
		h.open("div", "class", "container")
		h.element("a", uiText(rc, "All projects", "Tous les projets"), "class", "back-link", "href", rc.Href("/projects"))
		h.element("h1", rc.Text(p.Title))
		h.open("p", "class", "project__meta")
		h.element("span", string(p.Category), "class", "badge")
		h.open("span", "class", "project__year")
		h.int(p.Year)
		h.close("span")
		if p.Client != "" {
			h.element("span", p.Client, "class", "project__client")
		}
		h.close("p")
		if p.ImageURL != "" {
			h.open("img", "class", "project__image", "src", p.ImageURL, "alt", rc.Text(p.Title))
		}
		description := p.Description
		if p.LongDescription != nil && !p.LongDescription.IsZero() {
			description = *p.LongDescription
		}
		h.element("p", rc.Text(description), "class", "project__description")
		writeTechnologies(h, p.Technologies)
		writeProjectLinks(h, rc, p)
		h.close("div")
		h.close("section")
	})
}
