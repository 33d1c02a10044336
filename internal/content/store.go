package content

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonathan/portfolio-site/internal/types"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a loaded document is served before the source is read again.
const DefaultTTL = 60 * time.Second

// DefaultLoadTimeout bounds one read of the source.
const DefaultLoadTimeout = 30 * time.Second

// DefaultFeaturedLimit is the number of featured projects shown on the home page.
const DefaultFeaturedLimit = 3

// Store loads the content document from a Source and caches it for a TTL.
// A failed load never replaces or creates the cached document.
type Store struct {
	source      Source
	ttl         time.Duration
	loadTimeout time.Duration
	now         func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	doc      *types.Document
	raw      []byte
	loadedAt time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides DefaultTTL. A zero or negative TTL caches forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithLoadTimeout overrides DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// WithClock injects the time source used for TTL checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store reading from source.
func NewStore(source Source, opts ...Option) *Store {
	s := &Store{
		source:      source,
		ttl:         DefaultTTL,
		loadTimeout: DefaultLoadTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SourceName returns the name of the underlying source.
func (s *Store) SourceName() string {
	return s.source.Name()
}

type loaded struct {
	doc *types.Document
	raw []byte
}

// Load returns the cached document while it is fresh and reads the source otherwise.
func (s *Store) Load(ctx context.Context) (*types.Document, error) {
	if doc, _, ok := s.cached(); ok {
		return doc, nil
	}
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return l.doc, nil
}

// Reload reads the source regardless of the cache.
func (s *Store) Reload(ctx context.Context) (*types.Document, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return l.doc, nil
}

// Raw returns the document as canonical JSON, for serving to clients.
func (s *Store) Raw(ctx context.Context) ([]byte, error) {
	if _, raw, ok := s.cached(); ok {
		return raw, nil
	}
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return l.raw, nil
}

func (s *Store) cached() (*types.Document, []byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, nil, false
	}
	if s.ttl > 0 && s.now().Sub(s.loadedAt) >= s.ttl {
		return nil, nil, false
	}
	return s.doc, s.raw, true
}

// load reads and parses the source. Concurrent callers share one read, which
// runs detached from any single caller's cancellation.
func (s *Store) load(ctx context.Context) (*loaded, error) {
	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
		defer cancel()

		data, format, err := s.source.Read(ctx)
		if err != nil {
			return nil, &LoadError{Source: s.source.Name(), Message: "failed to read source", Cause: err}
		}
		doc, raw, err := Parse(s.source.Name(), data, format)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.doc = doc
		s.raw = raw
		s.loadedAt = s.now()
		s.mu.Unlock()

		log.Printf("[content] loaded %s (%d pages, %d sections)", s.source.Name(), len(doc.Pages), len(doc.Sections))
		return &loaded{doc: doc, raw: raw}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*loaded), nil
}

// Globals returns the site-wide configuration.
func (s *Store) Globals(ctx context.Context) (*types.Globals, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &doc.Globals, nil
}

// PageByID returns the page with id, or nil when no such page exists.
func (s *Store) PageByID(ctx context.Context, id string) (*types.Page, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	page, ok := doc.PageByID(id)
	if !ok {
		return nil, nil
	}
	return page, nil
}

// PageBySlug returns the page whose localized slug matches, or nil.
func (s *Store) PageBySlug(ctx context.Context, locale types.Locale, slug string) (*types.Page, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	page, ok := doc.PageBySlug(locale, slug)
	if !ok {
		return nil, nil
	}
	return page, nil
}

// SectionData returns the section with id, or nil when no such section exists.
func (s *Store) SectionData(ctx context.Context, id string) (*types.Section, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	section, ok := doc.Section(id)
	if !ok {
		return nil, nil
	}
	return section, nil
}

// AllProjects returns the full project catalogue.
func (s *Store) AllProjects(ctx context.Context) ([]types.ProjectItem, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.AllProjects(), nil
}

// FeaturedProjects returns up to limit featured projects in catalogue order.
// A non-positive limit uses DefaultFeaturedLimit.
func (s *Store) FeaturedProjects(ctx context.Context, limit int) ([]types.ProjectItem, error) {
	all, err := s.AllProjects(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return types.FeaturedProjects(all, limit), nil
}

// ProjectBySlug returns the project whose id matches slug, or nil.
func (s *Store) ProjectBySlug(ctx context.Context, slug string) (*types.ProjectItem, error) {
	all, err := s.AllProjects(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := types.FindProject(all, slug)
	if !ok {
		return nil, nil
	}
	return p, nil
}

// Languages returns the locales the document is written in.
func (s *Store) Languages(ctx context.Context) ([]types.Locale, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Languages, nil
}

// DefaultLanguage returns the document's fallback locale.
func (s *Store) DefaultLanguage(ctx context.Context) (types.Locale, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return doc.DefaultLanguage, nil
}
