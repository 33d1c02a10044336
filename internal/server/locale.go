package server

import (
	"net/http"

	"github.com/jonathan/portfolio-site/internal/types"
	"golang.org/x/text/language"
)

// negotiateLocale picks the response locale: ?lang= when the document
// supports it, then the best Accept-Language match, then the default.
func negotiateLocale(r *http.Request, doc *types.Document) types.Locale {
	if l, ok := types.ParseLocale(r.URL.Query().Get("lang")); ok && doc.SupportsLanguage(l) {
		return l
	}

	header := r.Header.Get("Accept-Language")
	if header == "" {
		return doc.DefaultLanguage
	}
	preferred, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(preferred) == 0 {
		return doc.DefaultLanguage
	}

	// The default goes first so it wins when nothing matches.
	supported := []types.Locale{doc.DefaultLanguage}
	for _, l := range doc.Languages {
		if l != doc.DefaultLanguage {
			supported = append(supported, l)
		}
	}
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = language.Make(string(l))
	}

	_, index, confidence := language.NewMatcher(tags).Match(preferred...)
	if confidence == language.No {
		return doc.DefaultLanguage
	}
	return supported[index]
}
