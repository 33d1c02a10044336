package types

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ProjectCategory is the closed set of project origins.
type ProjectCategory string

// Project categories
const (
	CategoryFreelance  ProjectCategory = "freelance"
	CategoryCompany    ProjectCategory = "company"
	CategoryPersonal   ProjectCategory = "personal"
	CategoryOpenSource ProjectCategory = "open-source"
)

// ProjectCategories lists the closed set of categories.
var ProjectCategories = []ProjectCategory{
	CategoryFreelance,
	CategoryCompany,
	CategoryPersonal,
	CategoryOpenSource,
}

// FilterAll selects every project regardless of category.
const FilterAll = "all"

// ProjectItem is one portfolio project.
type ProjectItem struct {
	ID              string          `json:"id"`
	Title           BilingualText   `json:"title"`
	Description     BilingualText   `json:"description"`
	LongDescription *BilingualText  `json:"longDescription,omitempty"`
	Technologies    []string        `json:"technologies"`
	Category        ProjectCategory `json:"category"`
	Featured        bool            `json:"featured,omitempty"`
	GithubURL       string          `json:"githubUrl,omitempty"`
	LiveURL         string          `json:"liveUrl,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	Year            int             `json:"year"`
	Client          string          `json:"client,omitempty"`
}

// SortOrder selects how projects are ordered.
type SortOrder string

// Sort orders
const (
	SortNewest   SortOrder = "newest"
	SortOldest   SortOrder = "oldest"
	SortNameAsc  SortOrder = "name-asc"
	SortNameDesc SortOrder = "name-desc"
)

// ParseSortOrder returns the sort order named s, defaulting to SortNewest.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortOldest, SortNameAsc, SortNameDesc:
		return SortOrder(s)
	default:
		return SortNewest
	}
}

// FilterProjects returns the projects in category. An empty category or
// FilterAll returns every project. The input slice is never modified.
func FilterProjects(projects []ProjectItem, category string) []ProjectItem {
	out := make([]ProjectItem, 0, len(projects))
	for _, p := range projects {
		if category == "" || category == FilterAll || string(p.Category) == category {
			out = append(out, p)
		}
	}
	return out
}

// SortProjects returns a sorted copy of projects. Name orders compare titles
// in locale using the locale's collation; ties keep document order.
func SortProjects(projects []ProjectItem, order SortOrder, locale Locale) []ProjectItem {
	out := slices.Clone(projects)
	col := collate.New(language.Make(string(locale)), collate.IgnoreCase)
	name := func(p ProjectItem) string { return p.Title.Resolve(locale, LocaleEN) }

	slices.SortStableFunc(out, func(a, b ProjectItem) int {
		switch order {
		case SortOldest:
			return a.Year - b.Year
		case SortNameAsc:
			return col.CompareString(name(a), name(b))
		case SortNameDesc:
			return col.CompareString(name(b), name(a))
		default:
			return b.Year - a.Year
		}
	})
	return out
}

// FeaturedProjects returns at most limit featured projects in document order.
func FeaturedProjects(projects []ProjectItem, limit int) []ProjectItem {
	var out []ProjectItem
	for _, p := range projects {
		if limit > 0 && len(out) >= limit {
			break
		}
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// FindProject returns the project whose id equals slug (case-insensitive).
func FindProject(projects []ProjectItem, slug string) (*ProjectItem, bool) {
	for i := range projects {
		if strings.EqualFold(projects[i].ID, slug) {
			p := projects[i]
			return &p, true
		}
	}
	return nil, false
}
