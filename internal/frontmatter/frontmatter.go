// Package frontmatter reads and writes the markdown files that make up a
// board on disk. Each file starts with a delimited YAML front section holding
// the structured fields, optionally followed by free-form body text. The body
// is carried verbatim: parsing a file and serializing it again reproduces the
// original content.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/corkline/corkline/pkg/types"
)

const delimiter = "---"

// Codec errors.
var (
	ErrNoFrontMatter       = errors.New("no front section found")
	ErrUnclosedFrontMatter = errors.New("front section is not closed")
)

// boardFront is the YAML shape of board.md's front section.
type boardFront struct {
	Title   string            `yaml:"title"`
	Columns []types.Column    `yaml:"columns"`
	Labels  []types.CardLabel `yaml:"labels,omitempty"`
}

// cardFront is the YAML shape of a card file's front section.
type cardFront struct {
	Title    string    `yaml:"title"`
	Column   string    `yaml:"column"`
	Position string    `yaml:"position"`
	Created  time.Time `yaml:"created"`
	Modified time.Time `yaml:"modified"`
	Labels   []string  `yaml:"labels,omitempty"`
}

// split separates a file into its front section and body. The front section
// must start at the first byte of the file.
func split(data []byte) (front, body string, err error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if text != delimiter && !strings.HasPrefix(text, delimiter+"\n") {
		return "", "", ErrNoFrontMatter
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(text, delimiter), "\n")
	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		return "", "", ErrUnclosedFrontMatter
	}
	front = rest[:end]
	body = rest[end+len("\n"+delimiter):]
	// Strip the delimiter's own line terminator, the blank separator line
	// the writer emits, and trailing newlines. Bodies are canonically held
	// without surrounding blank lines so a parse/serialize cycle is stable.
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimRight(body, "\n")
	return front, body, nil
}

// ParseBoard decodes board.md content into a Board.
func ParseBoard(data []byte) (types.Board, error) {
	front, _, err := split(data)
	if err != nil {
		return types.Board{}, err
	}
	var bf boardFront
	if err := yaml.Unmarshal([]byte(front), &bf); err != nil {
		return types.Board{}, fmt.Errorf("decoding board front section: %w", err)
	}
	return types.Board{Title: bf.Title, Columns: bf.Columns, Labels: bf.Labels}, nil
}

// MarshalBoard encodes a Board as board.md content.
func MarshalBoard(b types.Board) ([]byte, error) {
	return marshal(boardFront{Title: b.Title, Columns: b.Columns, Labels: b.Labels}, "")
}

// ParseCard decodes a card file. The slug is not stored in the file; it is
// the filename stem and the caller supplies it.
func ParseCard(slug string, data []byte) (*types.Card, error) {
	front, body, err := split(data)
	if err != nil {
		return nil, err
	}
	var cf cardFront
	if err := yaml.Unmarshal([]byte(front), &cf); err != nil {
		return nil, fmt.Errorf("decoding card front section: %w", err)
	}
	return &types.Card{
		Slug:     slug,
		Title:    cf.Title,
		Column:   cf.Column,
		Position: cf.Position,
		Created:  cf.Created.UTC(),
		Modified: cf.Modified.UTC(),
		Labels:   cf.Labels,
		Body:     body,
	}, nil
}

// MarshalCard encodes a card as file content.
func MarshalCard(c *types.Card) ([]byte, error) {
	return marshal(cardFront{
		Title:    c.Title,
		Column:   c.Column,
		Position: c.Position,
		Created:  c.Created.UTC(),
		Modified: c.Modified.UTC(),
		Labels:   c.Labels,
	}, c.Body)
}

// marshal renders a front-section value plus body into file content.
func marshal(front any, body string) ([]byte, error) {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(front); err != nil {
		return nil, fmt.Errorf("encoding front section: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing front section encoder: %w", err)
	}
	b.WriteString(delimiter + "\n")
	if body = strings.TrimRight(body, "\n"); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
