package watch

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// scaffoldBoard lays out a minimal board directory and returns its root.
func scaffoldBoard(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "board.md"),
		[]byte("---\ntitle: Test\ncolumns:\n  - id: todo\n    name: To Do\n  - id: done\n    name: Done\n---\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cards", "todo"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cards", "done"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "archive"), 0o755))
	return root
}

func writeCardFile(t *testing.T, root, column, slug string) string {
	t.Helper()
	path := filepath.Join(root, "cards", column, slug+".md")
	content := "---\ntitle: " + slug + "\ncolumn: " + column + "\nposition: n\n---\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// prime builds the poller's cache as Start would, without starting the loop,
// so the diff logic can be driven synchronously.
func (p *Poller) prime() {
	p.cache, p.boardMod = p.walk()
}

func TestPollerDetectsCreation(t *testing.T) {
	root := scaffoldBoard(t)
	p := NewPoller(root, time.Second, nil, testLogger())
	p.prime()

	path := writeCardFile(t, root, "todo", "fresh")

	batch := p.tick()
	assert.Equal(t, []string{path}, batch.Changed)
	assert.Empty(t, batch.DeletedSlugs)
	assert.False(t, batch.BoardChanged)
}

func TestPollerDetectsModification(t *testing.T) {
	root := scaffoldBoard(t)
	path := writeCardFile(t, root, "todo", "edited")
	p := NewPoller(root, time.Second, nil, testLogger())
	p.prime()

	// Push the mtime forward explicitly; filesystem timestamp granularity
	// is too coarse to rely on two writes in quick succession.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	batch := p.tick()
	assert.Equal(t, []string{path}, batch.Changed)

	// A second tick with nothing new reports nothing.
	assert.True(t, p.tick().Empty())
}

func TestPollerDetectsDeletion(t *testing.T) {
	root := scaffoldBoard(t)
	path := writeCardFile(t, root, "done", "goner")
	p := NewPoller(root, time.Second, nil, testLogger())
	p.prime()

	require.NoError(t, os.Remove(path))

	batch := p.tick()
	assert.Empty(t, batch.Changed)
	assert.Equal(t, []string{"goner"}, batch.DeletedSlugs)

	// The cache entry is gone: deleting is reported once.
	assert.True(t, p.tick().Empty())
}

func TestPollerTracksBoardFileSeparately(t *testing.T) {
	root := scaffoldBoard(t)
	p := NewPoller(root, time.Second, nil, testLogger())
	p.prime()

	boardPath := filepath.Join(root, "board.md")
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(boardPath, future, future))

	batch := p.tick()
	assert.True(t, batch.BoardChanged)
	assert.Empty(t, batch.Changed, "board file is not a card change")
}

func TestPollerIgnoresArchiveAndNonMarkdown(t *testing.T) {
	root := scaffoldBoard(t)
	p := NewPoller(root, time.Second, nil, testLogger())
	p.prime()

	require.NoError(t, os.WriteFile(filepath.Join(root, "archive", "2026-01-01-old.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cards", "todo", "scratch.txt"), []byte("x"), 0o644))

	assert.True(t, p.tick().Empty())
}

func TestPollerStartStopIdempotent(t *testing.T) {
	root := scaffoldBoard(t)
	var c collector
	p := NewPoller(root, 10*time.Millisecond, c.notify, testLogger())

	require.NoError(t, p.Start())
	require.NoError(t, p.Start(), "second start is a no-op")
	p.Stop()
	p.Stop()

	// Changes after Stop are never delivered.
	writeCardFile(t, root, "todo", "after-stop")
	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, c.count())
}
