package rendering

import (
	"fmt"
	"log"

	"github.com/a-h/templ"
	"github.com/jonathan/portfolio-site/internal/types"
)

// Renderer walks a page through the section and component registries.
type Renderer struct {
	Sections   *SectionRegistry
	Components *ComponentRegistry
}

// NewRenderer returns a renderer backed by the built-in registries.
func NewRenderer() *Renderer {
	return &Renderer{
		Sections:   DefaultSectionRegistry(),
		Components: DefaultComponentRegistry(),
	}
}

// RenderedSection records what was emitted for one section reference.
type RenderedSection struct {
	ID         string
	Type       types.SectionType
	Components []RenderedComponent
}

// RenderedComponent records one emitted component.
type RenderedComponent struct {
	ID   string
	Type types.ComponentType
}

// Tree is the composed output of RenderPage.
type Tree struct {
	Page     *types.Page
	Sections []RenderedSection
	Skipped  []*UnknownKindError
	// Body renders every section in document order.
	Body templ.Component
}

// RenderPage builds the body of page in document order. Sections that are
// absent or have no registered wrapper, and components with no registered
// renderer, are skipped with a warning. A renderer that rejects its
// variables aborts the page with a RenderError.
func (r *Renderer) RenderPage(rc *RenderContext, page *types.Page) (*Tree, error) {
	if page == nil {
		return nil, &RenderError{Message: "page is nil"}
	}
	tree := &Tree{Page: page}
	var bodies []templ.Component

	for _, ref := range page.Sections {
		section, ok := rc.Document.Section(ref.ID)
		if !ok {
			tree.skip(&UnknownKindError{Kind: KindSection, Tag: string(ref.Type), ID: ref.ID, Reason: "section is not defined"})
			continue
		}
		sectionType := section.Type
		if sectionType == "" {
			sectionType = ref.Type
		}
		if ref.Type != "" && ref.Type != sectionType {
			log.Printf("[render] page %q references section %q as %s but it is %s", page.ID, ref.ID, ref.Type, sectionType)
		}
		wrapper, ok := r.Sections.Resolve(sectionType)
		if !ok {
			tree.skip(&UnknownKindError{Kind: KindSection, Tag: string(sectionType), ID: ref.ID, Reason: "no section wrapper registered"})
			continue
		}

		rendered := RenderedSection{ID: ref.ID, Type: sectionType}
		var components []templ.Component
		for _, c := range section.Components {
			renderer, ok := r.Components.Resolve(c.Type)
			if !ok {
				tree.skip(&UnknownKindError{Kind: KindComponent, Tag: string(c.Type), ID: c.ID, Reason: "no component renderer registered"})
				continue
			}
			out, err := renderer(rc, c)
			if err != nil {
				return nil, &RenderError{
					Message: fmt.Sprintf("page %q section %q component %q", page.ID, ref.ID, c.ID),
					Cause:   err,
				}
			}
			components = append(components, out)
			rendered.Components = append(rendered.Components, RenderedComponent{ID: c.ID, Type: c.Type})
		}

		bodies = append(bodies, wrapper(rc, ref.ID, section, templ.Join(components...)))
		tree.Sections = append(tree.Sections, rendered)
	}

	tree.Body = templ.Join(bodies...)
	return tree, nil
}

func (t *Tree) skip(e *UnknownKindError) {
	log.Printf("[render] warning: %v", e)
	t.Skipped = append(t.Skipped, e)
}
