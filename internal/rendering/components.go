package rendering

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"
	"github.com/jonathan/portfolio-site/internal/types"
)

// FeaturedLimit is the number of featured projects a grid without its own
// project list shows.
const FeaturedLimit = 3

// variablesOf returns the typed payload of c or a RenderError naming the
// expected and actual payload types.
func variablesOf[T types.Variables](c types.Component) (T, error) {
	v, ok := c.Variables.(T)
	if !ok || c.Variables == nil {
		var zero T
		return zero, &RenderError{
			Message: fmt.Sprintf("component %q (%s) expects %T variables, got %T", c.ID, c.Type, zero, c.Variables),
		}
	}
	return v, nil
}

func uiText(rc *RenderContext, en, fr string) string {
	return rc.Text(types.BilingualText{EN: en, FR: fr})
}

func renderHero(rc *RenderContext, c types.Component) (templ.Component, error) {
	v, err := variablesOf[*types.HeroVariables](c)
	if err != nil {
		return nil, err
	}
	return componentFunc(func(h *htmlWriter) {
		h.open("div", "class", "hero", "data-component", c.ID)
		h.open("div", "class", "hero__content")
		if eyebrow := rc.Text(v.EyeBrowText); eyebrow != "" {
			h.element("p", eyebrow, "class", "hero__eyebrow")
		}
		h.element("h1", rc.Text(v.Headline), "class", "hero__headline")
		h.element("p", rc.Text(v.Subtext), "class", "hero__subtext")
		if desc := rc.Text(v.Description); desc != "" {
			h.element("p", desc, "class", "hero__description")
		}
		h.open("div", "class", "hero__actions")
		writeCTA(h, rc, v.CTAPrimary, "btn btn--primary")
		writeCTA(h, rc, v.CTASecondary, "btn btn--secondary")
		h.close("div")
		h.close("div")
		if v.Image != "" {
			alt := ""
			if rc.Document != nil {
				alt = rc.Text(rc.Document.Globals.SiteName)
			}
			h.open("img", "class", "hero__image", "src", v.Image, "alt", alt)
		}
		h.close("div")
	}), nil
}

func writeCTA(h *htmlWriter, rc *RenderContext, cta types.CTAButton, class string) {
	text := rc.Text(cta.Text)
	if text == "" || cta.Link == "" {
		return
	}
	h.element("a", text, "class", class, "href", rc.Href(cta.Link))
}

func renderSkills(rc *RenderContext, c types.Component) (templ.Component, error) {
	v, err := variablesOf[*types.SkillsVariables](c)
	if err != nil {
		return nil, err
	}
	return componentFunc(func(h *htmlWriter) {
		h.open("div", "class", "skills", "data-component", c.ID)
		h.element("h2", rc.Text(v.Title), "class", "section__title")
		if desc := rc.Text(v.Description); desc != "" {
			h.element("p", desc, "class", "section__description")
		}
		h.open("div", "class", "skills__grid")
		for _, cat := range v.Categories {
			h.open("div", "class", "skills__category")
			h.element("h3", cat.Name)
			h.open("ul")
			for _, s := range cat.Skills {
				h.open("li", "class", "skill", "data-level", strconv.Itoa(clampLevel(s.Level)))
				h.element("span", s.Name, "class", "skill__name")
				h.open("span", "class", "skill__bar", "style", "--level: "+strconv.Itoa(clampLevel(s.Level))+"%")
				h.close("span")
				h.close("li")
			}
			h.close("ul")
			h.close("div")
		}
		h.close("div")
		if v.Expertise != nil && len(v.Expertise.Items) > 0 {
			h.open("div", "class", "skills__expertise")
			h.element("h3", rc.Text(v.Expertise.Title))
			h.open("ul")
			for _, item := range v.Expertise.Items {
				h.open("li", "class", "expertise", "data-category", item.Category, "data-level", strconv.Itoa(clampLevel(item.Level)))
				h.text(item.Name)
				h.close("li")
			}
			h.close("ul")
			h.close("div")
		}
		if v.AdditionalExpertise != nil && len(v.AdditionalExpertise.Items) > 0 {
			h.open("div", "class", "skills__additional")
			h.element("h3", rc.Text(v.AdditionalExpertise.Title))
			h.open("ul")
			for _, item := range v.AdditionalExpertise.Items {
				h.element("li", rc.Text(item), "class", "tag")
			}
			h.close("ul")
			h.close("div")
		}
		h.close("div")
	}), nil
}

func clampLevel(level int) int {
	switch {
	case level < 0:
		return 0
	case level > 100:
		return 100
	default:
		return level
	}
}

// projectSelection applies the grid's rules: an empty list shows the
// featured catalogue projects; filter and sort apply only when the grid
// offers those options.
func projectSelection(rc *RenderContext, v *types.ProjectsVariables) []types.ProjectItem {
	projects := v.Projects
	if len(projects) == 0 && rc.Document != nil {
		projects = types.FeaturedProjects(rc.Document.AllProjects(), FeaturedLimit)
	}
	if len(v.FilterOptions) > 0 {
		projects = types.FilterProjects(projects, rc.ProjectFilter)
	}
	if len(v.SortOptions) > 0 {
		projects = types.SortProjects(projects, rc.ProjectSort, rc.Locale)
	}
	return projects
}

func renderProjects(rc *RenderContext, c types.Component) (templ.Component, error) {
	v, err := variablesOf[*types.ProjectsVariables](c)
	if err != nil {
		return nil, err
	}
	projects := projectSelection(rc, v)
	return componentFunc(func(h *htmlWriter) {
		h.open("div", "class", "projects", "data-component", c.ID)
		h.element("h2", rc.Text(v.Title), "class", "section__title")

		if len(v.FilterOptions) > 0 || len(v.SortOptions) > 0 {
			h.open("nav", "class", "projects__controls")
			writeOptions(h, rc, "filter", v.FilterOptions, rc.ProjectFilter, func(id string) string {
				return rc.queryHref(id, string(rc.ProjectSort))
			})
			writeOptions(h, rc, "sort", v.SortOptions, string(rc.ProjectSort), func(id string) string {
				return rc.queryHref(rc.ProjectFilter, id)
			})
			h.close("nav")
		}

		if len(projects) == 0 {
			h.element("p", uiText(rc, "No projects in this category yet.", "Aucun projet dans cette catégorie pour le moment."), "class", "projects__empty")
		} else {
			h.open("div", "class", "projects__grid")
			for i := range projects {
				writeProjectCard(h, rc, &projects[i])
			}
			h.close("div")
		}

		if v.ViewAllText != nil && v.ViewAllLink != "" {
			h.element("a", rc.Text(*v.ViewAllText), "class", "projects__view-all", "href", rc.Href(v.ViewAllLink))
		}
		if v.CTA != nil {
			h.open("div", "class", "projects__cta")
			h.element("h3", rc.Text(v.CTA.Title))
			h.element("p", rc.Text(v.CTA.Description))
			h.element("a", rc.Text(v.CTA.ButtonText), "class", "btn btn--primary", "href", rc.Href(v.CTA.ButtonLink))
			h.close("div")
		}
		h.close("div")
	}), nil
}

func writeOptions(h *htmlWriter, rc *RenderContext, kind string, options []types.Option, active string, href func(id string) string) {
	if len(options) == 0 {
		return
	}
	h.open("ul", "class", "projects__"+kind)
	for _, opt := range options {
		class := "option"
		if opt.ID == active {
			class = "option option--active"
		}
		h.open("li")
		h.element("a", rc.Text(opt.Label), "class", class, "href", href(opt.ID), "data-"+kind, opt.ID)
		h.close("li")
	}
	h.close("ul")
}

func writeProjectCard(h *htmlWriter, rc *RenderContext, p *types.ProjectItem) {
	h.open("article", "class", "project-card", "data-project", p.ID, "data-category", string(p.Category))
	if p.ImageURL != "" {
		h.open("img", "class", "project-card__image", "src", p.ImageURL, "alt", rc.Text(p.Title))
	}
	h.open("h3", "class", "project-card__title")
	h.element("a", rc.Text(p.Title), "href", rc.Href("/projects/"+p.ID))
	h.close("h3")
	h.element("p", rc.Text(p.Description), "class", "project-card__description")
	h.open("p", "class", "project-card__meta")
	h.element("span", string(p.Category), "class", "badge")
	h.open("span", "class", "project-card__year")
	h.int(p.Year)
	h.close("span")
	if p.Client != "" {
		h.element("span", p.Client, "class", "project-card__client")
	}
	h.close("p")
	writeTechnologies(h, p.Technologies)
	writeProjectLinks(h, rc, p)
	h.close("article")
}

func writeTechnologies(h *htmlWriter, technologies []string) {
	if len(technologies) == 0 {
		return
	}
	h.open("ul", "class", "tags")
	for _, tech := range technologies {
		h.element("li", tech, "class", "tag")
	}
	h.close("ul")
}

func writeProjectLinks(h *htmlWriter, rc *RenderContext, p *types.ProjectItem) {
	if p.LiveURL == "" && p.GithubURL == "" {
		return
	}
	h.open("div", "class", "project-card__links")
	if p.LiveURL != "" {
		h.element("a", uiText(rc, "Live site", "Site en ligne"), "href", p.LiveURL, "rel", "noopener", "target", "_blank")
	}
	if p.GithubURL != "" {
		h.element("a", uiText(rc, "Source code", "Code source"), "href", p.GithubURL, "rel", "noopener", "target", "_blank")
	}
	h.close("div")
}

func renderAbout(rc *RenderContext, c types.Component) (templ.Component, error) {
	v, err := variablesOf[*types.AboutVariables](c)
	if err != nil {
		return nil, err
	}
	return componentFunc(func(h *htmlWriter) {
		h.open("div", "class", "about", "data-component", c.ID)
		h.element("h2", rc.Text(v.Title), "class", "section__title")
		h.open("div", "class", "about__body")
		for _, paragraph := range rc.List(v.Content) {
			h.element("p", paragraph)
		}
		h.close("div")
		if v.Image != "" {
			h.open("img", "class", "about__image", "src", v.Image, "alt", rc.Text(v.Title))
		}
		if v.ContactInfo != nil {
			writeContactInfo(h, rc, v.ContactInfo)
		}
		h.close("div")
	}), nil
}

func writeContactInfo(h *htmlWriter, rc *RenderContext, info *types.ContactInfo) {
	h.open("ul", "class", "contact-info")
	if info.Email != "" {
		h.open("li")
		h.element("a", info.Email, "href", "mailto:"+info.Email)
		h.close("li")
	}
	if info.Phone != "" {
		h.open("li")
		h.element("a", info.Phone, "href", "tel:"+info.Phone)
		h.close("li")
	}
	if loc := rc.Text(info.Location); loc != "" {
		h.element("li", loc)
	}
	h.close("ul")
}

func renderContactForm(rc *RenderContext, c types.Component) (templ.Component, error) {
	v, err := variablesOf[*types.ContactVariables](c)
	if err != nil {
		return nil, err
	}
	return componentFunc(func(h *htmlWriter) {
		h.open("div", "class", "contact", "data-component", c.ID)
		h.element("h2", rc.Text(v.Title), "class", "section__title")
		h.element("p", rc.Text(v.Description), "class", "section__description")

		h.open("form", "class", "contact__form", "method", "post", "action", "/api/contact",
			"data-success", rc.Text(v.SuccessMessage), "data-error", rc.Text(v.ErrorMessage))
		for _, f := range v.FormFields {
			writeFormField(h, rc, f)
		}
		h.element("button", rc.Text(v.SubmitButton), "type", "submit", "class", "btn btn--primary")
		h.close("form")

		writeContactInfo(h, rc, &v.ContactInfo)

		if v.DownloadCV != nil && v.DownloadCV.URL != "" {
			h.open("form", "class", "contact__cv", "method", "post", "action", v.DownloadCV.URL)
			h.open("input", "type", "email", "name", "email", "required", "required",
				"placeholder", uiText(rc, "Your email", "Votre courriel"))
			h.element("button", rc.Text(v.DownloadCV.Text), "type", "submit", "class", "btn btn--secondary")
			h.close("form")
		}
		h.close("div")
	}), nil
}

func writeFormField(h *htmlWriter, rc *RenderContext, f types.ContactField) {
	id := "contact-" + f.Name
	h.open("div", "class", "field")
	label := rc.Text(f.Label)
	if f.Required {
		label += " *"
	}
	h.element("label", label, "for", id)

	attrs := []string{"id", id, "name", f.Name}
	if f.Required {
		attrs = append(attrs, "required", "required")
	}
	switch f.Type {
	case "textarea":
		h.open("textarea", append(attrs, "rows", "6")...)
		h.close("textarea")
	case "select":
		h.open("select", attrs...)
		if f.Name == "budget" {
			for _, b := range types.BudgetBuckets {
				h.element("option", string(b), "value", string(b))
			}
		}
		h.close("select")
	default:
		inputType := f.Type
		if inputType == "" {
			inputType = "text"
		}
		h.open("input", append(attrs, "type", inputType)...)
	}
	h.close("div")
}

func renderStats(rc *RenderContext, c types.Component) (templ.Component, error) {
	v, err := variablesOf[*types.StatsVariables](c)
	if err != nil {
		return nil, err
	}
	return componentFunc(func(h *htmlWriter) {
		h.open("dl", "class", "stats", "data-component", c.ID)
		for _, s := range v.Stats {
			h.open("div", "class", "stat")
			h.element("dt", rc.Text(s.Label), "class", "stat__label")
			h.element("dd", s.Value, "class", "stat__value")
			h.close("div")
		}
		h.close("dl")
	}), nil
}

func renderTimeline(rc *RenderContext, c types.Component) (templ.Component, error) {
	v, err := variablesOf[*types.TimelineVariables](c)
	if err != nil {
		return nil, err
	}
	return componentFunc(func(h *htmlWriter) {
		h.open("div", "class", "timeline", "data-component", c.ID)
		h.element("h2", rc.Text(v.Title), "class", "section__title")
		if desc := rc.Text(v.Description); desc != "" {
			h.element("p", desc, "class", "section__description")
		}
		h.open("ol", "class", "timeline__events")
		for _, e := range v.Events {
			h.open("li", "class", "timeline__event timeline__event--"+string(e.Type))
			h.element("time", e.Year)
			h.element("h3", rc.Text(e.Title))
			if e.Company != "" {
				h.element("p", e.Company, "class", "timeline__company")
			}
			h.element("p", rc.Text(e.Description))
			h.close("li")
		}
		h.close("ol")
		h.close("div")
	}), nil
}

func renderAchievements(rc *RenderContext, c types.Component) (templ.Component, error) {
	v, err := variablesOf[*types.AchievementsVariables](c)
	if err != nil {
		return nil, err
	}
	return componentFunc(func(h *htmlWriter) {
		h.open("div", "class", "achievements", "data-component", c.ID)
		h.element("h2", rc.Text(v.Title), "class", "section__title")
		if desc := rc.Text(v.Description); desc != "" {
			h.element("p", desc, "class", "section__description")
		}
		h.open("ul", "class", "achievements__list")
		for _, a := range v.Achievements {
			h.open("li", "class", "achievement", "data-icon", a.Icon)
			h.element("h3", rc.Text(a.Title))
			h.element("p", rc.Text(a.Description))
			if a.Year != "" {
				h.element("time", a.Year)
			}
			h.close("li")
		}
		h.close("ul")
		h.close("div")
	}), nil
}
