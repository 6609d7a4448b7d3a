// Package watch detects external changes to a board directory and reports
// them as coalesced batches. Two interchangeable backends implement one
// contract: an event-driven backend on top of the host's native change
// notification facility (fsnotify) and a polling backend for platforms
// without one. The store's reconciliation code never sees which backend
// produced a batch.
package watch

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/corkline/corkline/internal/boardfs"
	"github.com/corkline/corkline/pkg/types"
)

// Batch is one coalesced delivery of externally observed changes:
// card-file paths created or modified since the last delivery, slugs whose
// card files disappeared, and whether the board file itself changed.
type Batch struct {
	Changed      []string
	DeletedSlugs []string
	BoardChanged bool
}

// Empty reports whether the batch carries nothing.
func (b Batch) Empty() bool {
	return len(b.Changed) == 0 && len(b.DeletedSlugs) == 0 && !b.BoardChanged
}

// Notify receives batches. Implementations must be safe to call from the
// backend's goroutine; the store serializes delivery onto its own lock.
type Notify func(Batch)

// Backend is the change-detection contract. Start and Stop are idempotent;
// no notification is delivered after Stop returns.
type Backend interface {
	Start() error
	Stop()
}

// New selects the backend for the given configuration: the event-driven
// backend where the native facility exists, the poller where it does not or
// when the configuration forces it.
func New(cfg types.Config, root string, notify Notify, log *logrus.Logger) Backend {
	cfg = cfg.Normalized()
	switch {
	case cfg.Watcher == types.WatcherPoll:
		return NewPoller(root, cfg.PollInterval, notify, log)
	case cfg.Watcher == types.WatcherFsnotify:
		return NewFsnotify(root, cfg.Debounce, notify, log)
	case nativeWatchAvailable():
		return NewFsnotify(root, cfg.Debounce, notify, log)
	default:
		return NewPoller(root, cfg.PollInterval, notify, log)
	}
}

// nativeWatchAvailable reports whether fsnotify has a real implementation on
// this platform.
func nativeWatchAvailable() bool {
	switch runtime.GOOS {
	case "plan9", "js", "wasip1":
		return false
	}
	return true
}

// pathKind classifies an observed filesystem path.
type pathKind int

const (
	kindIgnore pathKind = iota
	kindBoard
	kindCard
	kindColumnDir
)

// classify maps an absolute path to its role relative to the board root.
// Only markdown files directly under cards/<columnID>/ count as cards; the
// archive directory and non-markdown files are ignored entirely.
func classify(root, path string) pathKind {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return kindIgnore
	}
	if rel == boardfs.BoardFile {
		return kindBoard
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if parts[0] != boardfs.CardsDir {
		return kindIgnore
	}
	switch len(parts) {
	case 2:
		return kindColumnDir
	case 3:
		if strings.HasSuffix(parts[2], boardfs.MarkdownExt) {
			return kindCard
		}
	}
	return kindIgnore
}

// sortedBatch builds a Batch from the debounced event map with stable
// ordering, so two backends observing the same changes report identical
// batches.
func sortedBatch(events map[string]bool, boardChanged bool) Batch {
	var batch Batch
	batch.BoardChanged = boardChanged
	for path, deleted := range events {
		if deleted {
			batch.DeletedSlugs = append(batch.DeletedSlugs, boardfs.SlugFromPath(path))
		} else {
			batch.Changed = append(batch.Changed, path)
		}
	}
	sort.Strings(batch.Changed)
	sort.Strings(batch.DeletedSlugs)
	return batch
}
