package rendering

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/jonathan/portfolio-site/internal/types"
)

// sectionClass maps HeroSection to "section section--hero".
func sectionClass(t types.SectionType) string {
	name := strings.TrimSuffix(string(t), "Section")
	return "section section--" + AnchorID(name)
}

func wrapSection(_ *RenderContext, id string, section *types.Section, body templ.Component) templ.Component {
	return componentFunc(func(h *htmlWriter) {
		h.open("section", "id", AnchorID(id), "class", sectionClass(section.Type), "data-section-type", string(section.Type))
		h.open("div", "class", "container")
		h.component(body)
		h.close("div")
		h.close("section")
	})
}
