package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/portfolio-site/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var siteContentPath = filepath.Join("..", "..", "data", "content.json")

func siteContent(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(siteContentPath)
	require.NoError(t, err)
	return data
}

type fakeSource struct {
	mu     sync.Mutex
	data   []byte
	format Format
	err    error
	reads  atomic.Int32
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Read(_ context.Context) ([]byte, Format, error) {
	s.reads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, "", s.err
	}
	format := s.format
	if format == "" {
		format = FormatJSON
	}
	return s.data, format, nil
}

func (s *fakeSource) set(data []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.err = err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestStore_LoadSiteContent(t *testing.T) {
	store := NewStore(&FileSource{Path: siteContentPath})

	doc, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []types.Locale{types.LocaleEN, types.LocaleFR}, doc.Languages)
	assert.Equal(t, types.LocaleEN, doc.DefaultLanguage)
	assert.Equal(t, "Jonathan Martin", doc.Globals.SiteName.EN)
	assert.Len(t, doc.Pages, 4)

	hero, ok := doc.Section("hero")
	require.True(t, ok)
	require.Len(t, hero.Components, 1)
	_, isHero := hero.Components[0].Variables.(*types.HeroVariables)
	assert.True(t, isHero)
}

func TestStore_CachesWithinTTL(t *testing.T) {
	src := &fakeSource{data: siteContent(t)}
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewStore(src, WithTTL(time.Minute), WithClock(clock.Now))
	ctx := context.Background()

	first, err := store.Load(ctx)
	require.NoError(t, err)
	clock.Advance(59 * time.Second)
	second, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), src.reads.Load())

	clock.Advance(time.Second)
	_, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.reads.Load(), "expired cache reads the source again")
}

func TestStore_ReloadBypassesCache(t *testing.T) {
	src := &fakeSource{data: siteContent(t)}
	store := NewStore(src)
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.NoError(t, err)
	_, err = store.Reload(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), src.reads.Load())
}

func TestStore_FailedReloadKeepsCache(t *testing.T) {
	src := &fakeSource{data: siteContent(t)}
	store := NewStore(src)
	ctx := context.Background()

	before, err := store.Load(ctx)
	require.NoError(t, err)

	src.set([]byte(`{"languages": ["en"]}`), nil)
	_, err = store.Reload(ctx)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))

	after, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestStore_MissingTopLevelKeys(t *testing.T) {
	keys := []string{"globals", "pages", "sections", "languages", "defaultLanguage"}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			var doc map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(siteContent(t), &doc))
			delete(doc, key)
			data, err := json.Marshal(doc)
			require.NoError(t, err)

			src := &fakeSource{data: data}
			store := NewStore(src)

			_, err = store.Load(context.Background())
			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "got %T: %v", err, err)

			_, err = store.Load(context.Background())
			require.Error(t, err, "failed load must not be cached")
			assert.Equal(t, int32(2), src.reads.Load())
		})
	}
}

func TestStore_SourceMissing(t *testing.T) {
	store := NewStore(&FileSource{Path: filepath.Join(t.TempDir(), "missing.json")})

	_, err := store.Load(context.Background())
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStore_ConcurrentLoadsShareOneRead(t *testing.T) {
	src := &fakeSource{data: siteContent(t)}
	store := NewStore(src)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Load(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, src.reads.Load(), int32(20))
	_, err := store.Load(context.Background())
	require.NoError(t, err)
}

// blockingSource holds every read until released or its context ends.
type blockingSource struct {
	data    []byte
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingSource) Name() string { return "blocking" }

func (s *blockingSource) Read(ctx context.Context) ([]byte, Format, error) {
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
		return s.data, FormatJSON, nil
	case <-ctx.Done():
		return nil, "", ctx.Err()
	}
}

func TestStore_CanceledCallerDoesNotFailSharedLoad(t *testing.T) {
	src := &blockingSource{data: siteContent(t), started: make(chan struct{}), release: make(chan struct{})}
	store := NewStore(src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := store.Load(ctx)
		done <- err
	}()

	<-src.started
	cancel()
	close(src.release)

	require.NoError(t, <-done)
	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Pages, 4)
}

func TestStore_LoadTimeout(t *testing.T) {
	src := &blockingSource{data: siteContent(t), started: make(chan struct{}), release: make(chan struct{})}
	store := NewStore(src, WithLoadTimeout(20*time.Millisecond))

	_, err := store.Load(context.Background())
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStore_Lookups(t *testing.T) {
	store := NewStore(&FileSource{Path: siteContentPath})
	ctx := context.Background()

	globals, err := store.Globals(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello@example.com", globals.Email)

	page, err := store.PageByID(ctx, "about")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "a-propos", page.Slug.FR)

	page, err = store.PageByID(ctx, "blog")
	assert.NoError(t, err)
	assert.Nil(t, page)

	page, err = store.PageBySlug(ctx, types.LocaleFR, "projets")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "projects", page.ID)

	section, err := store.SectionData(ctx, "stats")
	require.NoError(t, err)
	require.NotNil(t, section)
	assert.Equal(t, types.SectionStats, section.Type)

	section, err = store.SectionData(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, section)

	langs, err := store.Languages(ctx)
	require.NoError(t, err)
	assert.Len(t, langs, 2)

	def, err := store.DefaultLanguage(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.LocaleEN, def)
}

func TestStore_ProjectLookups(t *testing.T) {
	store := NewStore(&FileSource{Path: siteContentPath})
	ctx := context.Background()

	all, err := store.AllProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	featured, err := store.FeaturedProjects(ctx, 0)
	require.NoError(t, err)
	require.Len(t, featured, DefaultFeaturedLimit)
	for _, p := range featured {
		assert.True(t, p.Featured)
	}

	p, err := store.ProjectBySlug(ctx, "tiny-cms")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, types.CategoryOpenSource, p.Category)

	p, err = store.ProjectBySlug(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestStore_Raw(t *testing.T) {
	store := NewStore(&FileSource{Path: siteContentPath})

	raw, err := store.Raw(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, string(siteContent(t)), string(raw))
}

func TestHTTPSource(t *testing.T) {
	data := siteContent(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/content":
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write(data)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := NewStore(&HTTPSource{URL: srv.URL + "/api/content"})
	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Pages, 4)

	missing := NewStore(&HTTPSource{URL: srv.URL + "/missing"})
	_, err = missing.Load(context.Background())
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPSource_SizeLimit(t *testing.T) {
	data := siteContent(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	_, _, err := (&HTTPSource{URL: srv.URL, MaxBytes: 64}).Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 64 bytes")

	body, _, err := (&HTTPSource{URL: srv.URL, MaxBytes: int64(len(data))}).Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, body, len(data))
}

func TestHTTPSource_InvalidURL(t *testing.T) {
	_, _, err := (&HTTPSource{URL: "not a url"}).Read(context.Background())
	assert.Error(t, err)
}
