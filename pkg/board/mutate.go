package board

import (
	"fmt"
	"time"

	"github.com/corkline/corkline/internal/poskey"
	"github.com/corkline/corkline/pkg/types"
)

// CardUpdate names the card fields UpdateCard may change. Nil fields are
// left alone. The slug is deliberately absent: it never changes.
type CardUpdate struct {
	Title  *string
	Body   *string
	Labels *[]string
}

// AddCard creates a card at the end of the given column. The slug is
// derived from the title once, here, and never again; a duplicate slug
// anywhere on the board fails with types.ErrDuplicateSlug and changes
// nothing. Emits a created signal after the file is written.
func (s *Store) AddCard(title, column, body string, labels []string) (*types.Card, error) {
	card, err := s.addCardLocked(title, column, body, labels)
	if err != nil {
		return nil, err
	}
	s.emit(Signal{Kind: SignalCreated, Card: card.Clone()})
	return card.Clone(), nil
}

func (s *Store) addCardLocked(title, column, body string, labels []string) (*types.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		return nil, types.ErrEmptyTitle
	}
	slug := types.Slugify(title)
	if slug == "" {
		return nil, fmt.Errorf("title %q: %w", title, types.ErrEmptySlug)
	}
	if !s.board.HasColumn(column) {
		return nil, fmt.Errorf("column %q: %w", column, types.ErrColumnNotFound)
	}
	if _, taken := s.cards[slug]; taken {
		return nil, fmt.Errorf("creating card %q: %w", slug, types.ErrDuplicateSlug)
	}

	now := s.now().UTC()
	card := &types.Card{
		Slug:     slug,
		Title:    title,
		Column:   column,
		Position: poskey.After(s.maxPosition(column)),
		Created:  now,
		Modified: now,
		Labels:   labels,
		Body:     body,
	}
	if err := s.fs.CreateCard(card); err != nil {
		return nil, err
	}
	s.cards[slug] = card
	return card, nil
}

// UpdateCard rewrites a card's mutable content in place. The file path does
// not change: the slug is permanent regardless of title edits.
func (s *Store) UpdateCard(slug string, upd CardUpdate) (*types.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok := s.cards[slug]
	if !ok {
		return nil, fmt.Errorf("card %q: %w", slug, types.ErrCardNotFound)
	}

	card := cached.Clone()
	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, types.ErrEmptyTitle
		}
		card.Title = *upd.Title
	}
	if upd.Body != nil {
		card.Body = *upd.Body
	}
	if upd.Labels != nil {
		card.Labels = append([]string(nil), (*upd.Labels)...)
	}
	card.Modified = s.now().UTC()

	if err := s.fs.WriteCard(card); err != nil {
		return nil, err
	}
	s.cards[slug] = card
	return card.Clone(), nil
}

// MoveCard repositions a card. atIndex is the target rank within toColumn;
// a negative index appends. If the column changes, the file moves to the new
// subdirectory and the column field is rewritten as one logical operation.
// Emits a moved signal.
func (s *Store) MoveCard(slug, toColumn string, atIndex int) error {
	from, _, err := s.moveCardLocked(slug, toColumn, atIndex)
	if err != nil {
		return err
	}
	card, _ := s.Card(slug)
	s.emit(Signal{Kind: SignalMoved, Card: card, FromColumn: from})
	return nil
}

// moveCardLocked does the locked portion of a move. It reports whether the
// card actually changed column, which is what bulk moves count.
func (s *Store) moveCardLocked(slug, toColumn string, atIndex int) (fromColumn string, columnChanged bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok := s.cards[slug]
	if !ok {
		return "", false, fmt.Errorf("card %q: %w", slug, types.ErrCardNotFound)
	}
	if !s.board.HasColumn(toColumn) {
		return "", false, fmt.Errorf("column %q: %w", toColumn, types.ErrColumnNotFound)
	}

	card := cached.Clone()
	fromColumn = card.Column

	// Neighbors are computed against the target column without the moving
	// card itself, so a reorder within one column straddles the right pair.
	siblings := s.columnCards(toColumn)
	pruned := siblings[:0]
	for _, c := range siblings {
		if c.Slug != slug {
			pruned = append(pruned, c)
		}
	}
	var prev, next string
	switch {
	case atIndex < 0 || atIndex >= len(pruned):
		if len(pruned) > 0 {
			prev = pruned[len(pruned)-1].Position
		}
	default:
		if atIndex > 0 {
			prev = pruned[atIndex-1].Position
		}
		next = pruned[atIndex].Position
	}

	card.Position = poskey.Between(prev, next)
	card.Column = toColumn
	card.Modified = s.now().UTC()

	if fromColumn != toColumn {
		err = s.fs.RelocateCard(card, fromColumn)
	} else {
		err = s.fs.WriteCard(card)
	}
	if err != nil {
		return "", false, err
	}
	s.cards[slug] = card
	return fromColumn, fromColumn != toColumn, nil
}

// DeleteCard removes a card permanently: the file is gone and so is the
// cache entry. Emits a deleted signal.
func (s *Store) DeleteCard(slug string) error {
	card, err := s.deleteCardLocked(slug)
	if err != nil {
		return err
	}
	s.emit(Signal{Kind: SignalDeleted, Card: card})
	return nil
}

func (s *Store) deleteCardLocked(slug string) (*types.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[slug]
	if !ok {
		return nil, fmt.Errorf("card %q: %w", slug, types.ErrCardNotFound)
	}
	if err := s.fs.DeleteCard(card); err != nil {
		return nil, err
	}
	delete(s.cards, slug)
	return card.Clone(), nil
}

// ArchiveCard relocates a card's file to the archive directory under a
// date-prefixed name. Archived cards leave the cache and never reappear
// through the load path; they cannot be further mutated by the store.
// Emits a completed signal carrying the card's age.
func (s *Store) ArchiveCard(slug string) error {
	card, age, err := s.archiveCardLocked(slug)
	if err != nil {
		return err
	}
	s.emit(Signal{Kind: SignalCompleted, Card: card, Age: age})
	return nil
}

func (s *Store) archiveCardLocked(slug string) (*types.Card, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[slug]
	if !ok {
		return nil, 0, fmt.Errorf("card %q: %w", slug, types.ErrCardNotFound)
	}
	now := s.now().UTC()
	if _, err := s.fs.ArchiveCard(card, now); err != nil {
		return nil, 0, err
	}
	delete(s.cards, slug)
	return card.Clone(), card.Age(now), nil
}

// MoveCards appends the given cards to toColumn, preserving their relative
// order. Cards already in the target column are silently skipped; a failure
// on one card is logged and does not abort the rest. Returns the number of
// cards actually moved.
func (s *Store) MoveCards(slugs []string, toColumn string) int {
	moved := 0
	for _, slug := range slugs {
		card, err := s.Card(slug)
		if err != nil {
			s.log.WithError(err).WithField("slug", slug).Warn("bulk move skipped a card")
			continue
		}
		if card.Column == toColumn {
			// Already satisfies the postcondition; not counted.
			continue
		}
		from, changed, err := s.moveCardLocked(slug, toColumn, -1)
		if err != nil {
			s.log.WithError(err).WithField("slug", slug).Warn("bulk move skipped a card")
			continue
		}
		if changed {
			moved++
			if c, cerr := s.Card(slug); cerr == nil {
				s.emit(Signal{Kind: SignalMoved, Card: c, FromColumn: from})
			}
		}
	}
	return moved
}

// DeleteCards deletes each listed card independently, skipping failures,
// and returns the number actually deleted.
func (s *Store) DeleteCards(slugs []string) int {
	deleted := 0
	for _, slug := range slugs {
		if err := s.DeleteCard(slug); err != nil {
			s.log.WithError(err).WithField("slug", slug).Warn("bulk delete skipped a card")
			continue
		}
		deleted++
	}
	return deleted
}

// ArchiveCards archives each listed card independently, skipping failures,
// and returns the number actually archived.
func (s *Store) ArchiveCards(slugs []string) int {
	archived := 0
	for _, slug := range slugs {
		if err := s.ArchiveCard(slug); err != nil {
			s.log.WithError(err).WithField("slug", slug).Warn("bulk archive skipped a card")
			continue
		}
		archived++
	}
	return archived
}

// maxPosition returns the greatest position key currently used in a column,
// or "" when the column is empty. Caller holds s.mu.
func (s *Store) maxPosition(column string) string {
	max := ""
	for _, c := range s.cards {
		if c.Column == column && c.Position > max {
			max = c.Position
		}
	}
	return max
}
