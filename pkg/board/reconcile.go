package board

import (
	"fmt"

	"github.com/corkline/corkline/internal/watch"
)

// StartWatching constructs the platform-appropriate change-detection
// backend for the board root and wires its batches into reconciliation.
// Failure to establish the backend is returned as an error; the store keeps
// serving its last-loaded snapshot, it just stops seeing external edits.
func (s *Store) StartWatching() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return nil
	}
	backend := watch.New(s.cfg, s.fs.Root(), s.reconcile, s.log)
	if err := backend.Start(); err != nil {
		return fmt.Errorf("could not start watching: %w", err)
	}
	s.watcher = backend
	return nil
}

// StopWatching tears the backend down. Idempotent; no reconciliation runs
// after it returns.
func (s *Store) StopWatching() {
	s.mu.Lock()
	backend := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if backend != nil {
		backend.Stop()
	}
}

// Watching reports whether a change-detection backend is running.
func (s *Store) Watching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watcher != nil
}

// reconcile merges one externally observed batch into the cache. It runs on
// the backend's delivery goroutine but takes the store's write lock first,
// so cache mutation stays serialized with the store's own API. Lifecycle
// signals for the merged changes are emitted after the lock is released;
// an in-place edit that keeps the card in its column emits none, matching
// UpdateCard.
func (s *Store) reconcile(batch watch.Batch) {
	var signals []Signal

	s.mu.Lock()

	// A move between columns arrives as a deletion in the old directory
	// plus a creation in the new one; the upsert below re-homes the card,
	// so deletions for slugs that also changed are dropped.
	changedSlugs := make(map[string]bool, len(batch.Changed))

	for _, path := range batch.Changed {
		card, err := s.fs.LoadCard(path)
		if err != nil {
			// Likely a file observed mid-write. The completing write will
			// trigger its own notification and a clean reparse.
			s.log.WithError(err).WithField("path", path).
				Warn("skipping unparseable changed file")
			continue
		}
		changedSlugs[card.Slug] = true
		prev, existed := s.cards[card.Slug]
		s.cards[card.Slug] = card
		switch {
		case !existed:
			signals = append(signals, Signal{Kind: SignalCreated, Card: card.Clone()})
		case prev.Column != card.Column:
			signals = append(signals, Signal{Kind: SignalMoved, Card: card.Clone(), FromColumn: prev.Column})
		}
	}

	for _, slug := range batch.DeletedSlugs {
		if changedSlugs[slug] {
			continue
		}
		if card, ok := s.cards[slug]; ok {
			delete(s.cards, slug)
			s.log.WithField("slug", slug).Debug("card removed externally")
			signals = append(signals, Signal{Kind: SignalDeleted, Card: card.Clone()})
		}
	}

	if batch.BoardChanged {
		board, err := s.fs.LoadBoard()
		if err != nil {
			s.log.WithError(err).Warn("board file changed but could not be reloaded")
		} else {
			s.board = board
			if err := s.fs.EnsureColumnDirs(board); err != nil {
				s.log.WithError(err).Warn("could not create directories for new columns")
			}
		}
	}

	s.mu.Unlock()

	for _, sig := range signals {
		s.emit(sig)
	}
}
