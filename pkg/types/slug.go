package types

import (
	"strings"
	"unicode"
)

// Slugify derives a filename-safe identifier from a card title: lowercase,
// runs of whitespace collapsed to a single hyphen, and anything that is not
// a letter, digit, or hyphen stripped. The result is the card's permanent
// identity; it is computed once at creation and never recomputed from later
// title edits.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsSpace(r) || r == '_' || r == '-':
			pendingSep = b.Len() > 0
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep {
				b.WriteByte('-')
				pendingSep = false
			}
			b.WriteRune(r)
		}
		// Every other rune is unsafe in a filename and is dropped.
	}
	return b.String()
}
