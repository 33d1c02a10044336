// Package types provides type definitions for the content document and contact
// leads used throughout the portfolio site.
package types

import "strings"

// Locale is a language tag supported by the site.
type Locale string

// Supported locales
const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"
)

// SupportedLocales lists every locale a BilingualText carries, in display order.
var SupportedLocales = []Locale{LocaleEN, LocaleFR}

// ParseLocale normalizes s ("EN", "fr-CA", " en ") to a supported locale.
func ParseLocale(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	for _, l := range SupportedLocales {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// BilingualText holds one string per supported locale.
type BilingualText struct {
	EN string `json:"en"`
	FR string `json:"fr"`
}

// Get returns the text for locale without any fallback.
func (t BilingualText) Get(locale Locale) string {
	switch locale {
	case LocaleFR:
		return t.FR
	case LocaleEN:
		return t.EN
	default:
		return ""
	}
}

// Resolve returns the text for locale, falling back to fallback and then to
// any non-empty translation.
func (t BilingualText) Resolve(locale, fallback Locale) string {
	if s := t.Get(locale); s != "" {
		return s
	}
	if s := t.Get(fallback); s != "" {
		return s
	}
	for _, l := range SupportedLocales {
		if s := t.Get(l); s != "" {
			return s
		}
	}
	return ""
}

// Missing returns the locales of the given set that have no text.
func (t BilingualText) Missing(locales []Locale) []Locale {
	var missing []Locale
	for _, l := range locales {
		if strings.TrimSpace(t.Get(l)) == "" {
			missing = append(missing, l)
		}
	}
	return missing
}

// IsZero reports whether no locale has text.
func (t BilingualText) IsZero() bool {
	return t.EN == "" && t.FR == ""
}

// BilingualList holds one list of paragraphs per supported locale.
type BilingualList struct {
	EN []string `json:"en"`
	FR []string `json:"fr"`
}

// Resolve returns the paragraphs for locale, falling back to fallback.
func (l BilingualList) Resolve(locale, fallback Locale) []string {
	get := func(loc Locale) []string {
		if loc == LocaleFR {
			return l.FR
		}
		if loc == LocaleEN {
			return l.EN
		}
		return nil
	}
	if items := get(locale); len(items) > 0 {
		return items
	}
	return get(fallback)
}
