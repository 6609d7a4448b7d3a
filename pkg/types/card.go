package types

import (
	"strings"
	"time"
)

// Card is a single work item. The slug is assigned once at creation by
// normalizing the initial title and never changes afterwards; it is also the
// filename stem, so the on-disk path stays stable across title edits. Slugs
// are unique across the whole board, not merely within a column.
type Card struct {
	Slug     string    // permanent identity, filename stem
	Title    string    // mutable display title
	Column   string    // Column.ID of the owning lane
	Position string    // order key; lexicographic order is rank within the column
	Created  time.Time // set at creation
	Modified time.Time // bumped on every persisted mutation
	Labels   []string  // CardLabel IDs carried by this card
	Body     string    // free-form text below the front section
}

// HasLabel reports whether the card carries the given label ID.
func (c *Card) HasLabel(id string) bool {
	for _, l := range c.Labels {
		if l == id {
			return true
		}
	}
	return false
}

// Matches reports whether the card matches a free-text query: a
// case-insensitive substring match over title and body. An empty query
// matches every card.
func (c *Card) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Body), q)
}

// Clone returns a deep copy of the card. The store hands clones to callers
// so cached cards are never mutated outside its API.
func (c *Card) Clone() *Card {
	cp := *c
	if c.Labels != nil {
		cp.Labels = make([]string, len(c.Labels))
		copy(cp.Labels, c.Labels)
	}
	return &cp
}

// Age returns how long the card has existed, measured from its creation
// timestamp to now.
func (c *Card) Age(now time.Time) time.Duration {
	return now.Sub(c.Created)
}
