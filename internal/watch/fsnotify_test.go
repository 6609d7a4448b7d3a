package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitFor polls cond until it holds or the deadline passes. Event delivery
// latency varies across hosts, so assertions on live watchers go through
// this instead of fixed sleeps.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.Fail(t, "condition not met before deadline")
}

func TestFsnotifyStartStopIdempotent(t *testing.T) {
	root := scaffoldBoard(t)
	var c collector
	f := NewFsnotify(root, 20*time.Millisecond, c.notify, testLogger())

	require.NoError(t, f.Start())
	require.NoError(t, f.Start(), "second start is a no-op")
	f.Stop()
	f.Stop()

	// Changes after Stop are never delivered.
	writeCardFile(t, root, "todo", "after-stop")
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, c.count())
}

func TestFsnotifyObservesCardLifecycle(t *testing.T) {
	root := scaffoldBoard(t)
	var c collector
	f := NewFsnotify(root, 20*time.Millisecond, c.notify, testLogger())
	require.NoError(t, f.Start())
	defer f.Stop()

	resolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	path := writeCardFile(t, root, "todo", "observed")
	waitFor(t, func() bool {
		for _, p := range c.merged().Changed {
			if p == filepath.Join(resolved, "cards", "todo", "observed.md") {
				return true
			}
		}
		return false
	})

	require.NoError(t, os.Remove(path))
	waitFor(t, func() bool {
		for _, s := range c.merged().DeletedSlugs {
			if s == "observed" {
				return true
			}
		}
		return false
	})
}

func TestFsnotifyObservesBoardFile(t *testing.T) {
	root := scaffoldBoard(t)
	var c collector
	f := NewFsnotify(root, 20*time.Millisecond, c.notify, testLogger())
	require.NoError(t, f.Start())
	defer f.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, "board.md"),
		[]byte("---\ntitle: Renamed\ncolumns:\n  - id: todo\n    name: To Do\n---\n"), 0o644))

	waitFor(t, func() bool { return c.merged().BoardChanged })
}

func TestFsnotifyIgnoresArchiveAndNonMarkdown(t *testing.T) {
	root := scaffoldBoard(t)
	var c collector
	f := NewFsnotify(root, 20*time.Millisecond, c.notify, testLogger())
	require.NoError(t, f.Start())
	defer f.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, "archive", "2026-01-01-done.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cards", "todo", "scratch.txt"), []byte("x"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.True(t, c.merged().Empty())
}

// TestBackendEquivalence applies an identical sequence of filesystem
// operations under two boards, one watched by each backend, and requires the
// merged observations to match once paths are made root-relative.
func TestBackendEquivalence(t *testing.T) {
	fsRoot := scaffoldBoard(t)
	pollRoot := scaffoldBoard(t)

	var fsC, pollC collector
	fs := NewFsnotify(fsRoot, 20*time.Millisecond, fsC.notify, testLogger())
	require.NoError(t, fs.Start())
	defer fs.Stop()
	poller := NewPoller(pollRoot, 20*time.Millisecond, pollC.notify, testLogger())
	require.NoError(t, poller.Start())
	defer poller.Stop()

	// Each phase gets its own settle gap: a create immediately followed by a
	// delete may legitimately coalesce to nothing, so phases are separated
	// to make the expected observations unambiguous for both backends.
	settle := func() { time.Sleep(300 * time.Millisecond) }
	apply := func(phase func(root string)) {
		phase(fsRoot)
		phase(pollRoot)
		settle()
	}
	apply(func(root string) {
		writeCardFile(t, root, "todo", "alpha")
		writeCardFile(t, root, "done", "omega")
	})
	apply(func(root string) {
		require.NoError(t, os.Remove(filepath.Join(root, "cards", "done", "omega.md")))
	})
	apply(func(root string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "board.md"),
			[]byte("---\ntitle: Changed\ncolumns:\n  - id: todo\n    name: To Do\n---\n"), 0o644))
		// Excluded traffic: archive writes and non-markdown files.
		require.NoError(t, os.WriteFile(filepath.Join(root, "archive", "2026-02-02-x.md"), []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "cards", "todo", "ignore.tmp"), []byte("x"), 0o644))
	})

	normalize := func(c *collector, root string) Batch {
		resolved, err := filepath.EvalSymlinks(root)
		require.NoError(t, err)
		got := c.merged()
		rel := make([]string, 0, len(got.Changed))
		for _, p := range got.Changed {
			r, err := filepath.Rel(resolved, p)
			require.NoError(t, err)
			rel = append(rel, r)
		}
		got.Changed = rel
		return got
	}

	var want Batch
	waitFor(t, func() bool {
		want = normalize(&fsC, fsRoot)
		return want.BoardChanged && len(want.DeletedSlugs) > 0 && len(want.Changed) > 0
	})
	waitFor(t, func() bool {
		got := normalize(&pollC, pollRoot)
		return assert.ObjectsAreEqual(want, got)
	})

	got := normalize(&pollC, pollRoot)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{
		filepath.Join("cards", "done", "omega.md"),
		filepath.Join("cards", "todo", "alpha.md"),
	}, got.Changed)
	assert.Equal(t, []string{"omega"}, got.DeletedSlugs)
	assert.True(t, got.BoardChanged)
}
