package types

// Column is one lane of the board. The ID is assigned once and is immutable
// after any card references it; it doubles as the name of the column's
// subdirectory under cards/. Name is the mutable display string.
type Column struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// CardLabel is a board-scoped label that cards reference by ID.
type CardLabel struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Board holds the board metadata persisted in board.md. Column order is
// significant: it is the display order of the lanes.
type Board struct {
	Title   string      `yaml:"title"`
	Columns []Column    `yaml:"columns"`
	Labels  []CardLabel `yaml:"labels,omitempty"`
}

// Column returns the column with the given ID, or nil if the board does not
// declare it.
func (b *Board) Column(id string) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

// HasColumn reports whether the board declares a column with the given ID.
func (b *Board) HasColumn(id string) bool {
	return b.Column(id) != nil
}

// Label returns the label with the given ID, or nil if the board does not
// declare it.
func (b *Board) Label(id string) *CardLabel {
	for i := range b.Labels {
		if b.Labels[i].ID == id {
			return &b.Labels[i]
		}
	}
	return nil
}

// LoadedBoard is the transient result of a full directory scan: the board
// metadata plus every active card found under cards/. It is never persisted
// itself.
type LoadedBoard struct {
	Board Board
	Cards []*Card
}
