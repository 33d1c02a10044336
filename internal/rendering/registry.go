package rendering

import (
	"sort"
	"sync"

	"github.com/a-h/templ"
	"github.com/jonathan/portfolio-site/internal/types"
)

// ComponentRenderer builds the HTML for one component. It returns an error
// when the component's variables are not the payload it expects.
type ComponentRenderer func(rc *RenderContext, c types.Component) (templ.Component, error)

// SectionWrapper wraps the rendered components of one section in its layout.
type SectionWrapper func(rc *RenderContext, id string, section *types.Section, body templ.Component) templ.Component

// ComponentRegistry maps component type tags to renderers. Safe for
// concurrent use; registering a tag again replaces the previous renderer.
type ComponentRegistry struct {
	mu        sync.RWMutex
	renderers map[types.ComponentType]ComponentRenderer
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{renderers: make(map[types.ComponentType]ComponentRenderer)}
}

// Register binds tag to renderer.
func (r *ComponentRegistry) Register(tag types.ComponentType, renderer ComponentRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[tag] = renderer
}

// Resolve returns the renderer for tag.
func (r *ComponentRegistry) Resolve(tag types.ComponentType) (ComponentRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[tag]
	return renderer, ok
}

// Tags returns the registered tags in sorted order.
func (r *ComponentRegistry) Tags() []types.ComponentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]types.ComponentType, 0, len(r.renderers))
	for tag := range r.renderers {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// SectionRegistry maps section type tags to layout wrappers.
type SectionRegistry struct {
	mu       sync.RWMutex
	wrappers map[types.SectionType]SectionWrapper
}

// NewSectionRegistry returns an empty registry.
func NewSectionRegistry() *SectionRegistry {
	return &SectionRegistry{wrappers: make(map[types.SectionType]SectionWrapper)}
}

// Register binds tag to wrapper.
func (r *SectionRegistry) Register(tag types.SectionType, wrapper SectionWrapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wrappers[tag] = wrapper
}

// Resolve returns the wrapper for tag.
func (r *SectionRegistry) Resolve(tag types.SectionType) (SectionWrapper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wrapper, ok := r.wrappers[tag]
	return wrapper, ok
}

// Tags returns the registered tags in sorted order.
func (r *SectionRegistry) Tags() []types.SectionType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]types.SectionType, 0, len(r.wrappers))
	for tag := range r.wrappers {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// DefaultComponentRegistry returns a registry holding a renderer for every
// built-in component type.
func DefaultComponentRegistry() *ComponentRegistry {
	r := NewComponentRegistry()
	r.Register(types.ComponentHero, renderHero)
	r.Register(types.ComponentSkillsGrid, renderSkills)
	r.Register(types.ComponentProjectGrid, renderProjects)
	r.Register(types.ComponentAbout, renderAbout)
	r.Register(types.ComponentContactForm, renderContactForm)
	r.Register(types.ComponentStats, renderStats)
	r.Register(types.ComponentTimeline, renderTimeline)
	r.Register(types.ComponentAchievements, renderAchievements)
	return r
}

// DefaultSectionRegistry returns a registry holding a wrapper for every
// built-in section type.
func DefaultSectionRegistry() *SectionRegistry {
	r := NewSectionRegistry()
	for _, st := range types.SectionTypes {
		r.Register(st, wrapSection)
	}
	return r
}
