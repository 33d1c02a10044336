package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ComponentType tags the renderer a component is bound to.
type ComponentType string

// Known component types
const (
	ComponentHero         ComponentType = "HeroComponent"
	ComponentSkillsGrid   ComponentType = "SkillsGrid"
	ComponentProjectGrid  ComponentType = "ProjectGrid"
	ComponentAbout        ComponentType = "AboutComponent"
	ComponentContactForm  ComponentType = "ContactForm"
	ComponentStats        ComponentType = "StatsComponent"
	ComponentTimeline     ComponentType = "TimelineComponent"
	ComponentAchievements ComponentType = "AchievementsComponent"
)

// ComponentTypes lists the closed set of component types.
var ComponentTypes = []ComponentType{
	ComponentHero,
	ComponentSkillsGrid,
	ComponentProjectGrid,
	ComponentAbout,
	ComponentContactForm,
	ComponentStats,
	ComponentTimeline,
	ComponentAchievements,
}

// ErrUnknownComponentType is returned by DecodeVariables for tags outside the closed set.
var ErrUnknownComponentType = errors.New("unknown component type")

// Variables is the typed payload bound to a component. The set of
// implementations is closed: one per ComponentType.
type Variables interface {
	ComponentType() ComponentType
	variables()
}

// Component is a typed, data-driven unit rendered inside a section.
// Variables is nil when Type is not one of ComponentTypes; Raw always keeps
// the payload as it appeared in the document.
type Component struct {
	ID        string          `json:"id"`
	Type      ComponentType   `json:"type"`
	Variables Variables       `json:"-"`
	Raw       json.RawMessage `json:"-"`
}

// VariablesError reports a variables payload that does not match its type tag.
type VariablesError struct {
	ComponentID string
	Type        ComponentType
	Cause       error
}

func (e *VariablesError) Error() string {
	return fmt.Sprintf("component %q (%s): variables do not match schema: %v", e.ComponentID, e.Type, e.Cause)
}

func (e *VariablesError) Unwrap() error {
	return e.Cause
}

type componentWire struct {
	ID        string          `json:"id"`
	Type      ComponentType   `json:"type"`
	Variables json.RawMessage `json:"variables"`
}

// UnmarshalJSON decodes the variables payload strictly into the struct selected
// by the type tag. Unknown tags keep only the raw payload.
func (c *Component) UnmarshalJSON(data []byte) error {
	var wire componentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	c.ID = wire.ID
	c.Type = wire.Type
	c.Raw = wire.Variables
	c.Variables = nil

	vars, err := DecodeVariables(wire.Type, wire.Variables)
	if errors.Is(err, ErrUnknownComponentType) {
		return nil
	}
	if err != nil {
		return &VariablesError{ComponentID: wire.ID, Type: wire.Type, Cause: err}
	}
	c.Variables = vars
	return nil
}

// MarshalJSON writes the typed variables, or the raw payload for unknown tags.
func (c Component) MarshalJSON() ([]byte, error) {
	wire := componentWire{ID: c.ID, Type: c.Type, Variables: c.Raw}
	if c.Variables != nil {
		raw, err := json.Marshal(c.Variables)
		if err != nil {
			return nil, err
		}
		wire.Variables = raw
	}
	return json.Marshal(wire)
}

// NewVariables returns an empty payload for a known type.
func NewVariables(t ComponentType) (Variables, error) {
	switch t {
	case ComponentHero:
		return &HeroVariables{}, nil
	case ComponentSkillsGrid:
		return &SkillsVariables{}, nil
	case ComponentProjectGrid:
		return &ProjectsVariables{}, nil
	case ComponentAbout:
		return &AboutVariables{}, nil
	case ComponentContactForm:
		return &ContactVariables{}, nil
	case ComponentStats:
		return &StatsVariables{}, nil
	case ComponentTimeline:
		return &TimelineVariables{}, nil
	case ComponentAchievements:
		return &AchievementsVariables{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, t)
	}
}

// DecodeVariables decodes raw into the payload for t, rejecting unknown fields.
func DecodeVariables(t ComponentType, raw json.RawMessage) (Variables, error) {
	vars, err := NewVariables(t)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, errors.New("variables payload is missing")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(vars); err != nil {
		return nil, err
	}
	return vars, nil
}

// CTAButton is a call-to-action link.
type CTAButton struct {
	Text BilingualText `json:"text"`
	Link string        `json:"link"`
}

// HeroVariables feeds HeroComponent.
type HeroVariables struct {
	Headline     BilingualText `json:"headline"`
	Subtext      BilingualText `json:"subtext"`
	EyeBrowText  BilingualText `json:"eyeBrowText"`
	Description  BilingualText `json:"description"`
	CTAPrimary   CTAButton     `json:"ctaPrimary"`
	CTASecondary CTAButton     `json:"ctaSecondary"`
	Image        string        `json:"image"`
}

// Skill is a single skill with a 0-100 level.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Icon  string `json:"icon"`
}

// SkillCategory groups skills under a name.
type SkillCategory struct {
	Name   string  `json:"name"`
	Skills []Skill `json:"skills"`
}

// ExpertiseItem is a leveled item of an expertise block.
type ExpertiseItem struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

// Expertise is a titled list of leveled items.
type Expertise struct {
	Title BilingualText   `json:"title"`
	Items []ExpertiseItem `json:"items"`
}

// AdditionalExpertise is a titled list of free-text items.
type AdditionalExpertise struct {
	Title BilingualText   `json:"title"`
	Items []BilingualText `json:"items"`
}

// SkillsVariables feeds SkillsGrid.
type SkillsVariables struct {
	Title               BilingualText        `json:"title"`
	Description         BilingualText        `json:"description"`
	Categories          []SkillCategory      `json:"categories"`
	Expertise           *Expertise           `json:"expertise,omitempty"`
	AdditionalExpertise *AdditionalExpertise `json:"additionalExpertise,omitempty"`
}

// Option is a selectable filter or sort entry.
type Option struct {
	ID    string        `json:"id"`
	Label BilingualText `json:"label"`
}

// ProjectsCTA is the call-to-action block under a project grid.
type ProjectsCTA struct {
	Title       BilingualText `json:"title"`
	Description BilingualText `json:"description"`
	ButtonText  BilingualText `json:"buttonText"`
	ButtonLink  string        `json:"buttonLink"`
}

// ProjectsVariables feeds ProjectGrid.
type ProjectsVariables struct {
	Title         BilingualText  `json:"title"`
	ViewAllText   *BilingualText `json:"viewAllText,omitempty"`
	ViewAllLink   string         `json:"viewAllLink,omitempty"`
	Projects      []ProjectItem  `json:"projects"`
	FilterOptions []Option       `json:"filterOptions,omitempty"`
	SortOptions   []Option       `json:"sortOptions,omitempty"`
	CTA           *ProjectsCTA   `json:"cta,omitempty"`
}

// ContactInfo is the owner's contact block.
type ContactInfo struct {
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Location BilingualText `json:"location"`
}

// AboutVariables feeds AboutComponent.
type AboutVariables struct {
	Title       BilingualText `json:"title"`
	Content     BilingualList `json:"content"`
	Image       string        `json:"image"`
	ContactInfo *ContactInfo  `json:"contactInfo,omitempty"`
}

// ContactField describes one form field.
type ContactField struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Label    BilingualText `json:"label"`
	Required bool          `json:"required"`
}

// DownloadCV is the CV download call-to-action.
type DownloadCV struct {
	Text BilingualText `json:"text"`
	URL  string        `json:"url"`
}

// ContactVariables feeds ContactForm.
type ContactVariables struct {
	Title          BilingualText  `json:"title"`
	Description    BilingualText  `json:"description"`
	FormFields     []ContactField `json:"formFields"`
	SubmitButton   BilingualText  `json:"submitButton"`
	SuccessMessage BilingualText  `json:"successMessage"`
	ErrorMessage   BilingualText  `json:"errorMessage"`
	ContactInfo    ContactInfo    `json:"contactInfo"`
	DownloadCV     *DownloadCV    `json:"downloadCV,omitempty"`
}

// StatItem is a single headline figure.
type StatItem struct {
	Value string        `json:"value"`
	Label BilingualText `json:"label"`
}

// StatsVariables feeds StatsComponent.
type StatsVariables struct {
	Stats []StatItem `json:"stats"`
}

// TimelineEventType distinguishes work from education entries.
type TimelineEventType string

// Timeline event types
const (
	TimelineWork      TimelineEventType = "work"
	TimelineEducation TimelineEventType = "education"
)

// TimelineEvent is one dated career entry.
type TimelineEvent struct {
	Year        string            `json:"year"`
	Title       BilingualText     `json:"title"`
	Company     string            `json:"company"`
	Description BilingualText     `json:"description"`
	Type        TimelineEventType `json:"type"`
}

// TimelineVariables feeds TimelineComponent.
type TimelineVariables struct {
	Title       BilingualText   `json:"title"`
	Description BilingualText   `json:"description"`
	Events      []TimelineEvent `json:"events"`
}

// AchievementItem is one achievement card.
type AchievementItem struct {
	Icon        string        `json:"icon"`
	Title       BilingualText `json:"title"`
	Description BilingualText `json:"description"`
	Year        string        `json:"year"`
}

// AchievementsVariables feeds AchievementsComponent.
type AchievementsVariables struct {
	Title        BilingualText     `json:"title"`
	Description  BilingualText     `json:"description"`
	Achievements []AchievementItem `json:"achievements"`
}

func (*HeroVariables) ComponentType() ComponentType         { return ComponentHero }
func (*SkillsVariables) ComponentType() ComponentType       { return ComponentSkillsGrid }
func (*ProjectsVariables) ComponentType() ComponentType     { return ComponentProjectGrid }
func (*AboutVariables) ComponentType() ComponentType        { return ComponentAbout }
func (*ContactVariables) ComponentType() ComponentType      { return ComponentContactForm }
func (*StatsVariables) ComponentType() ComponentType        { return ComponentStats }
func (*TimelineVariables) ComponentType() ComponentType     { return ComponentTimeline }
func (*AchievementsVariables) ComponentType() ComponentType { return ComponentAchievements }

func (*HeroVariables) variables()         {}
func (*SkillsVariables) variables()       {}
func (*ProjectsVariables) variables()     {}
func (*AboutVariables) variables()        {}
func (*ContactVariables) variables()      {}
func (*StatsVariables) variables()        {}
func (*TimelineVariables) variables()     {}
func (*AchievementsVariables) variables() {}
