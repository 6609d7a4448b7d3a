// Package boardfs is the persistence layer for a board directory. It walks
// the on-disk layout, applies the front-section codec, enforces naming rules,
// and performs atomic create/move/archive/delete of individual files.
//
// Layout:
//
//	<root>/board.md                    board metadata
//	<root>/cards/<columnID>/<slug>.md  one file per active card
//	<root>/archive/<date>-<slug>.md    archived cards
package boardfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/corkline/corkline/internal/frontmatter"
	"github.com/corkline/corkline/pkg/types"
)

// On-disk layout names.
const (
	BoardFile   = "board.md"
	CardsDir    = "cards"
	ArchiveDir  = "archive"
	MarkdownExt = ".md"
)

// Dir is a handle on one board directory. It holds no state beyond the root
// path; every operation goes to disk.
type Dir struct {
	root string
	log  *logrus.Logger
}

// New returns a handle on the board directory at root. A nil logger falls
// back to the logrus standard logger.
func New(root string, log *logrus.Logger) *Dir {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dir{root: root, log: log}
}

// Root returns the board root path.
func (d *Dir) Root() string {
	return d.root
}

// BoardPath returns the path of the board metadata file.
func (d *Dir) BoardPath() string {
	return filepath.Join(d.root, BoardFile)
}

// CardPath returns the path a card file resolves to from (column, slug).
func (d *Dir) CardPath(column, slug string) string {
	return filepath.Join(d.root, CardsDir, column, slug+MarkdownExt)
}

// ArchivePath returns the path an archived card file resolves to. The date
// prefix keeps the archive directory chronologically sortable by filename
// alone.
func (d *Dir) ArchivePath(slug string, date time.Time) string {
	name := fmt.Sprintf("%s-%s%s", date.Format("2006-01-02"), slug, MarkdownExt)
	return filepath.Join(d.root, ArchiveDir, name)
}

// SlugFromPath returns the slug encoded in a card file path: the filename
// stem.
func SlugFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), MarkdownExt)
}

// Init scaffolds a new board: board.md, a subdirectory per declared column,
// and the archive directory. It refuses to overwrite an existing board file.
func (d *Dir) Init(board types.Board) error {
	if _, err := os.Stat(d.BoardPath()); err == nil {
		return fmt.Errorf("initializing %s: board file already exists", d.root)
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("creating board root: %w", err)
	}
	if err := d.SaveBoard(board); err != nil {
		return err
	}
	if err := d.EnsureColumnDirs(board); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(d.root, ArchiveDir), 0o755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}
	return nil
}

// LoadBoard reads and parses board.md. Its absence is fatal to opening the
// board and reported as types.ErrBoardFileMissing.
func (d *Dir) LoadBoard() (types.Board, error) {
	data, err := os.ReadFile(d.BoardPath())
	if err != nil {
		if os.IsNotExist(err) {
			return types.Board{}, fmt.Errorf("%s: %w", d.BoardPath(), types.ErrBoardFileMissing)
		}
		return types.Board{}, fmt.Errorf("reading board file: %w", err)
	}
	board, err := frontmatter.ParseBoard(data)
	if err != nil {
		return types.Board{}, fmt.Errorf("parsing %s: %w", d.BoardPath(), err)
	}
	return board, nil
}

// Load performs a full scan: board.md plus every card file under every
// column subdirectory. Missing column subdirectories are created. A card
// file whose front section cannot be parsed is skipped with a warning rather
// than failing the load. Cards come back sorted by position-key order within
// each column.
func (d *Dir) Load() (*types.LoadedBoard, error) {
	board, err := d.LoadBoard()
	if err != nil {
		return nil, err
	}
	if err := d.EnsureColumnDirs(board); err != nil {
		return nil, err
	}

	var cards []*types.Card
	for _, col := range board.Columns {
		colCards, err := d.loadColumn(col.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, colCards...)
	}
	return &types.LoadedBoard{Board: board, Cards: cards}, nil
}

// loadColumn parses every markdown file directly under one column
// subdirectory, sorted by position key.
func (d *Dir) loadColumn(columnID string) ([]*types.Card, error) {
	dir := filepath.Join(d.root, CardsDir, columnID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading column directory %s: %w", dir, err)
	}

	var cards []*types.Card
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), MarkdownExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		card, err := d.LoadCard(path)
		if err != nil {
			// Recoverable: skip this file, keep the rest of the load.
			d.log.WithError(err).WithField("path", path).Warn("skipping unparseable card file")
			continue
		}
		cards = append(cards, card)
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Position != cards[j].Position {
			return cards[i].Position < cards[j].Position
		}
		return cards[i].Slug < cards[j].Slug
	})
	return cards, nil
}

// LoadCard reads and parses one card file. The card's column is taken from
// its parent directory: if the column field in the file disagrees, the
// directory wins, since the file's location is what the board actually
// shows.
func (d *Dir) LoadCard(path string) (*types.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card file: %w", err)
	}
	card, err := frontmatter.ParseCard(SlugFromPath(path), data)
	if err != nil {
		return nil, &types.ParseError{Path: path, Err: err}
	}
	if dirColumn := filepath.Base(filepath.Dir(path)); card.Column != dirColumn {
		d.log.WithFields(logrus.Fields{
			"path":   path,
			"field":  card.Column,
			"parent": dirColumn,
		}).Warn("card column field disagrees with parent directory, using directory")
		card.Column = dirColumn
	}
	return card, nil
}

// SaveBoard atomically rewrites board.md.
func (d *Dir) SaveBoard(board types.Board) error {
	data, err := frontmatter.MarshalBoard(board)
	if err != nil {
		return err
	}
	return writeFileAtomic(d.BoardPath(), data)
}

// CreateCard writes a brand-new card file. It fails with
// types.ErrDuplicateSlug, writing nothing, if the slug is already taken
// anywhere on the board. The column subdirectory is created if missing.
func (d *Dir) CreateCard(card *types.Card) error {
	taken, err := d.SlugExists(card.Slug)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("creating card %q: %w", card.Slug, types.ErrDuplicateSlug)
	}
	dir := filepath.Join(d.root, CardsDir, card.Column)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating column directory: %w", err)
	}
	return d.WriteCard(card)
}

// WriteCard atomically rewrites a card file at the path its (column, slug)
// resolves to.
func (d *Dir) WriteCard(card *types.Card) error {
	data, err := frontmatter.MarshalCard(card)
	if err != nil {
		return err
	}
	return writeFileAtomic(d.CardPath(card.Column, card.Slug), data)
}

// RelocateCard persists a card whose column changed: the file is written at
// its new path and the old one removed, as one logical move. The new file
// lands completely before the old path disappears, so a crash in between
// leaves a duplicate rather than a loss.
func (d *Dir) RelocateCard(card *types.Card, fromColumn string) error {
	dir := filepath.Join(d.root, CardsDir, card.Column)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating column directory: %w", err)
	}
	if err := d.WriteCard(card); err != nil {
		return err
	}
	old := d.CardPath(fromColumn, card.Slug)
	if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing relocated card file %s: %w", old, err)
	}
	return nil
}

// DeleteCard removes a card file permanently.
func (d *Dir) DeleteCard(card *types.Card) error {
	path := d.CardPath(card.Column, card.Slug)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting card file %s: %w", path, err)
	}
	return nil
}

// ArchiveCard moves a card file out of its column subdirectory and into the
// archive directory under a date-prefixed name. Archived cards never come
// back through Load. Returns the archive path.
func (d *Dir) ArchiveCard(card *types.Card, date time.Time) (string, error) {
	if err := os.MkdirAll(filepath.Join(d.root, ArchiveDir), 0o755); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}
	dst := d.ArchivePath(card.Slug, date)
	data, err := frontmatter.MarshalCard(card)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(dst, data); err != nil {
		return "", err
	}
	src := d.CardPath(card.Column, card.Slug)
	if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("removing archived card file %s: %w", src, err)
	}
	return dst, nil
}

// EnsureColumnDirs creates a subdirectory under cards/ for every column the
// board declares.
func (d *Dir) EnsureColumnDirs(board types.Board) error {
	for _, col := range board.Columns {
		dir := filepath.Join(d.root, CardsDir, col.ID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating column directory %s: %w", dir, err)
		}
	}
	return nil
}

// RemoveColumnDir deletes a column's subdirectory only if it holds no files.
// A non-empty directory is left untouched and reported as
// types.ErrColumnNotEmpty so the caller can warn instead of losing cards.
func (d *Dir) RemoveColumnDir(columnID string) error {
	dir := filepath.Join(d.root, CardsDir, columnID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading column directory %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("column %q: %w", columnID, types.ErrColumnNotEmpty)
	}
	if err := os.Remove(dir); err != nil {
		return fmt.Errorf("removing column directory %s: %w", dir, err)
	}
	return nil
}

// SlugExists reports whether any active card file on the board already uses
// the slug, in any column subdirectory.
func (d *Dir) SlugExists(slug string) (bool, error) {
	cardsRoot := filepath.Join(d.root, CardsDir)
	entries, err := os.ReadDir(cardsRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading cards directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(cardsRoot, entry.Name(), slug+MarkdownExt)
		if _, err := os.Stat(candidate); err == nil {
			return true, nil
		} else if !os.IsNotExist(err) {
			return false, fmt.Errorf("checking %s: %w", candidate, err)
		}
	}
	return false, nil
}
