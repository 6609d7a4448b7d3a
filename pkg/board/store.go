// Package board implements the board store: the in-memory cache of a board
// and its cards, the sole mutation authority for changes issued through its
// API, and the reconciliation point for changes observed on disk by a
// change-detection backend. One store, one watcher, per open board.
package board

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/corkline/corkline/internal/boardfs"
	"github.com/corkline/corkline/internal/watch"
	"github.com/corkline/corkline/pkg/types"
)

// Store owns the in-memory board and card cache. Mutations issued through
// its API are applied synchronously under one lock and persisted before the
// cache changes; externally observed changes arrive only through the
// watcher's batches and re-enter through the same lock.
type Store struct {
	mu  sync.RWMutex
	fs  *boardfs.Dir
	cfg types.Config
	log *logrus.Logger

	board types.Board
	cards map[string]*types.Card // keyed by slug

	watcher  watch.Backend
	onSignal func(Signal)

	// Filter state feeding FilteredCards.
	query       string
	labelFilter []string

	now func() time.Time
}

// Open loads the board directory described by cfg into a new store. A
// missing or unreadable board file aborts the open. Individual card files
// that fail to parse are skipped with a warning.
func Open(cfg types.Config, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		fs:    boardfs.New(cfg.BoardDir, log),
		cfg:   cfg,
		log:   log,
		cards: make(map[string]*types.Card),
		now:   time.Now,
	}
	loaded, err := s.fs.Load()
	if err != nil {
		return nil, fmt.Errorf("opening board at %s: %w", cfg.BoardDir, err)
	}
	s.board = loaded.Board
	for _, c := range loaded.Cards {
		s.cards[c.Slug] = c
	}
	return s, nil
}

// Close stops the watcher if one is running. Safe to call more than once.
func (s *Store) Close() {
	s.StopWatching()
}

// OnSignal registers the lifecycle-signal callback. Signals are emitted
// after persistence succeeds and outside the store's lock, so the handler
// may call back into the store.
func (s *Store) OnSignal(fn func(Signal)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSignal = fn
}

// Board returns a snapshot of the board metadata.
func (s *Store) Board() types.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.board
	b.Columns = append([]types.Column(nil), s.board.Columns...)
	b.Labels = append([]types.CardLabel(nil), s.board.Labels...)
	return b
}

// Card returns a copy of one card by slug.
func (s *Store) Card(slug string) (*types.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[slug]
	if !ok {
		return nil, fmt.Errorf("card %q: %w", slug, types.ErrCardNotFound)
	}
	return c.Clone(), nil
}

// Cards returns the cards of one column in position-key order.
func (s *Store) Cards(column string) []*types.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.columnCards(column)
}

// CardsWithTitles returns every card whose title matches one of the given
// titles exactly, in board order (column by column, position within).
func (s *Store) CardsWithTitles(titles []string) []*types.Card {
	want := make(map[string]bool, len(titles))
	for _, t := range titles {
		want[t] = true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*types.Card
	for _, col := range s.board.Columns {
		for _, c := range s.columnCards(col.ID) {
			if want[c.Title] {
				out = append(out, c)
			}
		}
	}
	return out
}

// columnCards builds the sorted, cloned card list for a column. Caller
// holds at least the read lock.
func (s *Store) columnCards(column string) []*types.Card {
	var out []*types.Card
	for _, c := range s.cards {
		if c.Column == column {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// emit delivers a lifecycle signal. Must be called without holding s.mu.
func (s *Store) emit(sig Signal) {
	s.mu.RLock()
	fn := s.onSignal
	s.mu.RUnlock()
	if fn != nil {
		fn(sig)
	}
}
