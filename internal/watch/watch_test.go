package watch

import (
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corkline/corkline/pkg/types"
)

func TestClassify(t *testing.T) {
	root := filepath.Join("/", "boards", "home")
	tests := []struct {
		name string
		path string
		want pathKind
	}{
		{name: "board file", path: filepath.Join(root, "board.md"), want: kindBoard},
		{name: "card file", path: filepath.Join(root, "cards", "todo", "fix.md"), want: kindCard},
		{name: "column dir", path: filepath.Join(root, "cards", "todo"), want: kindColumnDir},
		{name: "non-markdown under column", path: filepath.Join(root, "cards", "todo", "notes.txt"), want: kindIgnore},
		{name: "archive file", path: filepath.Join(root, "archive", "2026-01-01-fix.md"), want: kindIgnore},
		{name: "nested too deep", path: filepath.Join(root, "cards", "todo", "sub", "x.md"), want: kindIgnore},
		{name: "markdown at root", path: filepath.Join(root, "README.md"), want: kindIgnore},
		{name: "outside root", path: filepath.Join("/", "elsewhere", "cards", "todo", "x.md"), want: kindIgnore},
		{name: "cards dir itself", path: filepath.Join(root, "cards"), want: kindIgnore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(root, tt.path))
		})
	}
}

func TestSortedBatch(t *testing.T) {
	events := map[string]bool{
		"/b/cards/todo/zeta.md":  false,
		"/b/cards/todo/alpha.md": false,
		"/b/cards/done/gone.md":  true,
		"/b/cards/todo/lost.md":  true,
	}
	batch := sortedBatch(events, true)

	assert.Equal(t, []string{"/b/cards/todo/alpha.md", "/b/cards/todo/zeta.md"}, batch.Changed)
	assert.Equal(t, []string{"gone", "lost"}, batch.DeletedSlugs)
	assert.True(t, batch.BoardChanged)
	assert.False(t, batch.Empty())
	assert.True(t, Batch{}.Empty())
}

func TestNewSelectsBackend(t *testing.T) {
	noop := func(Batch) {}
	cfg := types.Config{Watcher: types.WatcherPoll}
	_, ok := New(cfg, t.TempDir(), noop, nil).(*Poller)
	assert.True(t, ok)

	cfg.Watcher = types.WatcherFsnotify
	_, ok = New(cfg, t.TempDir(), noop, nil).(*Fsnotify)
	assert.True(t, ok)
}

// collector gathers delivered batches for assertions.
type collector struct {
	mu      sync.Mutex
	batches []Batch
}

func (c *collector) notify(b Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, b)
}

// merged folds every delivered batch into one, deduplicated and sorted, so
// tests can compare backends independent of how deliveries were sliced.
func (c *collector) merged() Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := map[string]bool{}
	deleted := map[string]bool{}
	var board bool
	for _, b := range c.batches {
		for _, p := range b.Changed {
			changed[p] = true
		}
		for _, s := range b.DeletedSlugs {
			deleted[s] = true
		}
		board = board || b.BoardChanged
	}
	var out Batch
	for p := range changed {
		out.Changed = append(out.Changed, p)
	}
	for s := range deleted {
		out.DeletedSlugs = append(out.DeletedSlugs, s)
	}
	sort.Strings(out.Changed)
	sort.Strings(out.DeletedSlugs)
	out.BoardChanged = board
	return out
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}
