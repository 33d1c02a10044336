package types

// Document is the root of the content document (content.json).
type Document struct {
	Languages       []Locale           `json:"languages"`
	DefaultLanguage Locale             `json:"defaultLanguage"`
	Globals         Globals            `json:"globals"`
	Pages           []Page             `json:"pages"`
	Sections        map[string]Section `json:"sections"`
}

// Globals is the site-wide configuration shared by every page.
type Globals struct {
	SiteName  BilingualText         `json:"siteName"`
	JobTitle  BilingualText         `json:"jobTitle"`
	Location  BilingualText         `json:"location"`
	Email     string                `json:"email"`
	Phone     string                `json:"phone"`
	About     BilingualText         `json:"about"`
	Theme     ThemeColors           `json:"theme"`
	Socials   map[string]SocialLink `json:"socials"`
	ResumeURL string                `json:"resumeUrl"`
}

// ThemeColors holds the theme tokens exposed to the page shell as CSS variables.
type ThemeColors struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	Background     string `json:"background"`
	Surface        string `json:"surface"`
	Text           string `json:"text"`
	AccentColor    string `json:"accentColor"`
}

// SocialLink is a labelled external profile link.
type SocialLink struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Page describes one routable page and the ordered sections it shows.
type Page struct {
	ID       string        `json:"id"`
	Slug     BilingualText `json:"slug"`
	Title    BilingualText `json:"title"`
	Meta     *PageMeta     `json:"meta,omitempty"`
	Sections []SectionRef  `json:"sections"`
}

// PageMeta holds optional page metadata.
type PageMeta struct {
	Description BilingualText `json:"description"`
}

// SectionRef points from a page to an entry of Document.Sections.
type SectionRef struct {
	ID   string      `json:"id"`
	Type SectionType `json:"type"`
}

// SectionType tags a section layout wrapper.
type SectionType string

// Known section types
const (
	SectionHero         SectionType = "HeroSection"
	SectionSkills       SectionType = "SkillsSection"
	SectionProjects     SectionType = "ProjectsSection"
	SectionAbout        SectionType = "AboutSection"
	SectionContact      SectionType = "ContactSection"
	SectionTimeline     SectionType = "TimelineSection"
	SectionStats        SectionType = "StatsSection"
	SectionAchievements SectionType = "AchievementsSection"
)

// SectionTypes lists the closed set of section types.
var SectionTypes = []SectionType{
	SectionHero,
	SectionSkills,
	SectionProjects,
	SectionAbout,
	SectionContact,
	SectionTimeline,
	SectionStats,
	SectionAchievements,
}

// Known reports whether t belongs to the closed set of section types.
func (t SectionType) Known() bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Section is a layout region holding ordered components.
type Section struct {
	Type       SectionType `json:"type"`
	Components []Component `json:"components"`
}

// PageByID returns the page with the given id.
func (d *Document) PageByID(id string) (*Page, bool) {
	for i := range d.Pages {
		if d.Pages[i].ID == id {
			return &d.Pages[i], true
		}
	}
	return nil, false
}

// PageBySlug returns the page whose slug in locale (or any locale) equals slug.
func (d *Document) PageBySlug(locale Locale, slug string) (*Page, bool) {
	for i := range d.Pages {
		if d.Pages[i].Slug.Get(locale) == slug {
			return &d.Pages[i], true
		}
	}
	for i := range d.Pages {
		for _, l := range SupportedLocales {
			if d.Pages[i].Slug.Get(l) == slug {
				return &d.Pages[i], true
			}
		}
	}
	return nil, false
}

// Section returns the section with the given id.
func (d *Document) Section(id string) (*Section, bool) {
	section, ok := d.Sections[id]
	if !ok {
		return nil, false
	}
	return &section, true
}

// SupportsLanguage reports whether locale is one of the document languages.
func (d *Document) SupportsLanguage(locale Locale) bool {
	for _, l := range d.Languages {
		if l == locale {
			return true
		}
	}
	return false
}

// AllProjects returns the projects of the "all-projects" section.
func (d *Document) AllProjects() []ProjectItem {
	section, ok := d.Sections[AllProjectsSectionID]
	if !ok {
		return nil
	}
	for _, c := range section.Components {
		if v, ok := c.Variables.(*ProjectsVariables); ok {
			return v.Projects
		}
	}
	return nil
}

// AllProjectsSectionID is the section holding the full project catalogue.
const AllProjectsSectionID = "all-projects"
