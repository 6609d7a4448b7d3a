package board

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/corkline/corkline/pkg/types"
)

// SetTitle renames the board.
func (s *Store) SetTitle(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.board
	updated.Title = title
	if err := s.fs.SaveBoard(updated); err != nil {
		return err
	}
	s.board = updated
	return nil
}

// AddColumn appends a column to the board. The ID is derived from the name
// the same way card slugs are; a name that normalizes to nothing gets a
// generated ID. The column's subdirectory is created immediately.
func (s *Store) AddColumn(name string) (types.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := types.Slugify(name)
	if id == "" {
		id = uuid.NewString()
	}
	if s.board.HasColumn(id) {
		return types.Column{}, fmt.Errorf("column %q already exists", id)
	}

	col := types.Column{ID: id, Name: name}
	updated := s.board
	updated.Columns = append(append([]types.Column(nil), s.board.Columns...), col)
	if err := s.fs.SaveBoard(updated); err != nil {
		return types.Column{}, err
	}
	if err := s.fs.EnsureColumnDirs(updated); err != nil {
		return types.Column{}, err
	}
	s.board = updated
	return col, nil
}

// RenameColumn changes a column's display name. The ID, and therefore the
// subdirectory and every card's column field, stays put.
func (s *Store) RenameColumn(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.board
	updated.Columns = append([]types.Column(nil), s.board.Columns...)
	found := false
	for i := range updated.Columns {
		if updated.Columns[i].ID == id {
			updated.Columns[i].Name = name
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("column %q: %w", id, types.ErrColumnNotFound)
	}
	if err := s.fs.SaveBoard(updated); err != nil {
		return err
	}
	s.board = updated
	return nil
}

// RemoveColumn drops a column from the board. Its subdirectory is deleted
// only if empty; a non-empty directory is left untouched with a warning as
// the only feedback, so cards on disk are never lost — they just reference
// a column the board no longer declares.
func (s *Store) RemoveColumn(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.board
	updated.Columns = nil
	found := false
	for _, col := range s.board.Columns {
		if col.ID == id {
			found = true
			continue
		}
		updated.Columns = append(updated.Columns, col)
	}
	if !found {
		return fmt.Errorf("column %q: %w", id, types.ErrColumnNotFound)
	}
	if err := s.fs.SaveBoard(updated); err != nil {
		return err
	}
	s.board = updated

	if err := s.fs.RemoveColumnDir(id); err != nil {
		s.log.WithError(err).WithField("column", id).
			Warn("column removed from board but its directory was kept")
	}
	// Cards of an undeclared column leave the active cache: the files stay
	// on disk, but a fresh load would not see them either.
	for slug, c := range s.cards {
		if c.Column == id {
			delete(s.cards, slug)
		}
	}
	return nil
}

// AddLabel declares a new board label and returns it with its generated ID.
func (s *Store) AddLabel(name, color string) (types.CardLabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	label := types.CardLabel{ID: uuid.NewString(), Name: name, Color: color}
	updated := s.board
	updated.Labels = append(append([]types.CardLabel(nil), s.board.Labels...), label)
	if err := s.fs.SaveBoard(updated); err != nil {
		return types.CardLabel{}, err
	}
	s.board = updated
	return label, nil
}

// RemoveLabel drops a label from the board and strips it from every card
// carrying it, persisting each card independently. A card that fails to
// persist keeps the label on disk and is logged; the label itself is gone
// from the board either way.
func (s *Store) RemoveLabel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.board
	updated.Labels = nil
	found := false
	for _, l := range s.board.Labels {
		if l.ID == id {
			found = true
			continue
		}
		updated.Labels = append(updated.Labels, l)
	}
	if !found {
		return fmt.Errorf("label %q: %w", id, types.ErrLabelNotFound)
	}
	if err := s.fs.SaveBoard(updated); err != nil {
		return err
	}
	s.board = updated

	for _, cached := range s.cards {
		if !cached.HasLabel(id) {
			continue
		}
		card := cached.Clone()
		kept := card.Labels[:0]
		for _, l := range card.Labels {
			if l != id {
				kept = append(kept, l)
			}
		}
		card.Labels = kept
		card.Modified = s.now().UTC()
		if err := s.fs.WriteCard(card); err != nil {
			s.log.WithError(err).WithField("slug", card.Slug).
				Warn("could not strip removed label from card")
			continue
		}
		s.cards[card.Slug] = card
	}
	return nil
}
