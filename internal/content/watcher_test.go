package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.json")
	original := siteContent(t)
	require.NoError(t, os.WriteFile(path, original, 0644))

	store := NewStore(&FileSource{Path: path}, WithTTL(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := store.Load(ctx)
	require.NoError(t, err)

	reloads := make(chan error, 4)
	w := NewWatcher(store, path, 20*time.Millisecond)
	w.onReload = func(err error) { reloads <- err }

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	updated := strings.Replace(string(original), "Jonathan Martin", "Jo Martin", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case err := <-reloads:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload")
	}

	globals, err := store.Globals(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jo Martin", globals.SiteName.EN)

	time.Sleep(100 * time.Millisecond)
	drain(reloads)

	require.NoError(t, os.WriteFile(path, []byte("{ broken"), 0644))
	select {
	case err := <-reloads:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not attempt reload")
	}

	globals, err = store.Globals(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jo Martin", globals.SiteName.EN, "broken edit keeps previous document")

	cancel()
	assert.NoError(t, <-done)
}

func drain(ch chan error) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
