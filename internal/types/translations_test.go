package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Untranslated(t *testing.T) {
	doc := &Document{
		Languages:       SupportedLocales,
		DefaultLanguage: LocaleEN,
		Globals: Globals{
			SiteName: BilingualText{EN: "Jo", FR: "Jo"},
			JobTitle: BilingualText{EN: "Engineer"},
		},
		Pages: []Page{{
			ID:    "home",
			Slug:  BilingualText{EN: "", FR: ""},
			Title: BilingualText{FR: "Accueil"},
		}},
		Sections: map[string]Section{
			"hero": {Type: SectionHero, Components: []Component{{
				ID:   "hero-1",
				Type: ComponentHero,
				Variables: &HeroVariables{
					Headline:   BilingualText{EN: "Hi", FR: "Salut"},
					CTAPrimary: CTAButton{Text: BilingualText{EN: "Contact"}},
				},
			}}},
		},
	}

	fields := doc.Untranslated()
	require.Len(t, fields, 3)
	assert.Equal(t, "globals.jobTitle", fields[0].Path)
	assert.Equal(t, []Locale{LocaleFR}, fields[0].Missing)
	assert.Equal(t, "pages[0].title", fields[1].Path)
	assert.Equal(t, []Locale{LocaleEN}, fields[1].Missing)
	assert.Equal(t, "sections.hero.components[0].variables.ctaPrimary.text", fields[2].Path)
	assert.Equal(t, "pages[0].title (missing en)", fields[1].String())
}

func TestDocument_UntranslatedOnlyChecksDocumentLanguages(t *testing.T) {
	doc := &Document{
		Languages: []Locale{LocaleEN},
		Globals:   Globals{JobTitle: BilingualText{EN: "Engineer"}},
	}
	assert.Empty(t, doc.Untranslated())
	assert.Empty(t, (*Document)(nil).Untranslated())
}
