package board

import "github.com/corkline/corkline/pkg/types"

// SetFilter replaces the store's filter state: a free-text query matched
// case-insensitively against title and body, and a set of label IDs a card
// must all carry. The two filter kinds combine conjunctively.
func (s *Store) SetFilter(query string, labelIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.labelFilter = append([]string(nil), labelIDs...)
}

// ClearFilter resets the filter state so FilteredCards reports everything.
func (s *Store) ClearFilter() {
	s.SetFilter("", nil)
}

// FilteredCards returns the cards of one column that pass the current
// filter, in position-key order.
func (s *Store) FilteredCards(column string) []*types.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Card
	for _, c := range s.columnCards(column) {
		if s.passes(c) {
			out = append(out, c)
		}
	}
	return out
}

// passes applies the filter to one card. Caller holds at least the read
// lock.
func (s *Store) passes(c *types.Card) bool {
	if !c.Matches(s.query) {
		return false
	}
	for _, id := range s.labelFilter {
		if !c.HasLabel(id) {
			return false
		}
	}
	return true
}
