package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/corkline/corkline/internal/boardfs"
)

// Fsnotify is the event-driven backend. It subscribes to the host's native
// directory-change notifications for the board root, the cards directory,
// and every column subdirectory, and feeds raw events through the shared
// debouncer.
type Fsnotify struct {
	root     string
	debounce time.Duration
	notify   Notify
	log      *logrus.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	deb     *debouncer
	done    chan struct{}
}

// NewFsnotify returns an event-driven backend bound to the board root. A nil
// logger falls back to the logrus standard logger.
func NewFsnotify(root string, debounce time.Duration, notify Notify, log *logrus.Logger) *Fsnotify {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Fsnotify{root: root, debounce: debounce, notify: notify, log: log}
}

// Start subscribes to change notifications. Idempotent: starting a running
// backend is a no-op.
func (f *Fsnotify) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watcher != nil {
		return nil
	}

	// Common temp and cache locations are frequently symlinked; resolve the
	// root once so observed paths match it after canonicalization.
	root, err := filepath.EvalSymlinks(f.root)
	if err != nil {
		return fmt.Errorf("resolving board root: %w", err)
	}
	f.root = root

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watching: %w", err)
	}

	dirs := []string{root, filepath.Join(root, boardfs.CardsDir)}
	columnDirs, globErr := filepath.Glob(filepath.Join(root, boardfs.CardsDir, "*"))
	if globErr == nil {
		dirs = append(dirs, columnDirs...)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("could not start watching %s: %w", dir, err)
		}
	}

	f.watcher = watcher
	f.deb = newDebouncer(f.debounce, f.notify)
	f.done = make(chan struct{})
	go f.loop(watcher, f.deb, f.done)
	return nil
}

// Stop tears the subscription down. Idempotent; no notification is delivered
// after it returns.
func (f *Fsnotify) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watcher == nil {
		return
	}
	f.watcher.Close()
	<-f.done
	f.deb.stop()
	f.watcher = nil
	f.deb = nil
}

// loop drains the watcher until it is closed.
func (f *Fsnotify) loop(watcher *fsnotify.Watcher, deb *debouncer, done chan struct{}) {
	defer close(done)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			f.handle(watcher, deb, ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			f.log.WithError(err).Warn("watcher error")
		}
	}
}

// handle classifies one raw event and records it.
func (f *Fsnotify) handle(watcher *fsnotify.Watcher, deb *debouncer, ev fsnotify.Event) {
	path := canonicalize(ev.Name)
	switch classify(f.root, path) {
	case kindBoard:
		if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
			deb.markBoard()
		}
	case kindCard:
		switch {
		case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
			deb.add(path, false)
		case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
			deb.add(path, true)
		}
	case kindColumnDir:
		// A column subdirectory appearing means the board grew a lane; start
		// watching it so its cards are observed too.
		if ev.Op&fsnotify.Create != 0 {
			if err := watcher.Add(path); err != nil {
				f.log.WithError(err).WithField("dir", path).Warn("could not watch new column directory")
			}
		}
	}
}

// canonicalize resolves symlinks in the directory part of a path. The file
// itself may already be gone (delete events), so only the parent is
// resolved.
func canonicalize(path string) string {
	dir, base := filepath.Split(path)
	resolved, err := filepath.EvalSymlinks(filepath.Clean(dir))
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Join(resolved, base)
}
