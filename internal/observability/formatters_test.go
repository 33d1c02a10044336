package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/portfolio-site/internal/rendering"
	"github.com/jonathan/portfolio-site/internal/types"
	"github.com/stretchr/testify/assert"
)

func testDocument() *types.Document {
	return &types.Document{
		Languages:       []types.Locale{types.LocaleEN, types.LocaleFR},
		DefaultLanguage: types.LocaleEN,
		Globals:         types.Globals{SiteName: types.BilingualText{EN: "Jonathan Martin", FR: "Jonathan Martin"}},
		Pages: []types.Page{
			{ID: "home", Sections: []types.SectionRef{{ID: "hero", Type: types.SectionHero}}},
			{ID: "projects", Slug: types.BilingualText{EN: "projects", FR: "projets"}},
		},
		Sections: map[string]types.Section{
			"hero": {Type: types.SectionHero},
			types.AllProjectsSectionID: {
				Type: types.SectionProjects,
				Components: []types.Component{{
					ID:   "grid",
					Type: types.ComponentProjectGrid,
					Variables: &types.ProjectsVariables{Projects: []types.ProjectItem{
						{ID: "a", Featured: true},
						{ID: "b"},
					}},
				}},
			},
		},
	}
}

func TestPrintDocumentSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocumentSummary("data/content.json", testDocument())
	output := buf.String()

	assert.Contains(t, output, "CONTENT DOCUMENT")
	assert.Contains(t, output, "data/content.json")
	assert.Contains(t, output, "Jonathan Martin")
	assert.Contains(t, output, "en, fr (default en)")
	assert.Contains(t, output, "Pages (2)")
	assert.Contains(t, output, "home / (1 sections)")
	assert.Contains(t, output, "projects /projects")
	assert.Contains(t, output, "Sections (2)")
	assert.Contains(t, output, "Projects: 2 (1 featured)")
}

func TestPrintDocumentSummary_TruncatesSections(t *testing.T) {
	doc := testDocument()
	for _, id := range []string{"s1", "s2", "s3", "s4", "s5"} {
		doc.Sections[id] = types.Section{Type: types.SectionHero}
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocumentSummary("x", doc)
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintDocumentSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocumentSummary("x", nil)
	assert.Empty(t, buf.String())
}

func TestPrintRenderTree(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	page := &types.Page{ID: "home"}
	tree := &rendering.Tree{
		Page: page,
		Sections: []rendering.RenderedSection{
			{ID: "hero", Type: types.SectionHero, Components: []rendering.RenderedComponent{
				{ID: "hero-main", Type: types.ComponentHero},
			}},
		},
		Skipped: []*rendering.UnknownKindError{
			{Kind: rendering.KindComponent, Tag: "Carousel", ID: "carousel-1", Reason: "no renderer registered"},
		},
	}

	p.PrintRenderTree(tree, types.LocaleFR)
	output := buf.String()

	assert.Contains(t, output, "RENDER TREE")
	assert.Contains(t, output, "Locale: fr")
	assert.Contains(t, output, "1. hero [HeroSection]")
	assert.Contains(t, output, "hero-main [HeroComponent]")
	assert.Contains(t, output, "Skipped (1)")
	assert.Contains(t, output, `"carousel-1" (Carousel)`)
}

func TestPrintRenderTree_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRenderTree(nil, types.LocaleEN)
	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintUntranslated(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintUntranslated([]types.UntranslatedField{
		{Path: "sections.hero.components[0].variables.headline", Missing: []types.Locale{types.LocaleFR}},
	})
	assert.Contains(t, buf.String(), "Untranslated fields (1)")
	assert.Contains(t, buf.String(), "sections.hero.components[0].variables.headline (missing fr)")

	buf.Reset()
	NewPrinter(&buf).PrintUntranslated(nil)
	assert.Contains(t, buf.String(), "All fields translated")
}
