package types

import (
	"errors"
	"fmt"
)

// Write errors surfaced synchronously by mutating operations. On any of
// these the in-memory cache is left untouched.
var (
	ErrDuplicateSlug  = errors.New("a card with this slug already exists on the board")
	ErrColumnNotFound = errors.New("column not found")
	ErrCardNotFound   = errors.New("card not found")
	ErrEmptyTitle     = errors.New("card title must not be empty")
	ErrEmptySlug      = errors.New("title normalizes to an empty slug")
	ErrColumnNotEmpty = errors.New("column directory is not empty")
	ErrLabelNotFound  = errors.New("label not found")
)

// Load errors. A missing board file is fatal to opening the board.
var (
	ErrBoardFileMissing = errors.New("board file does not exist")
)

// Watcher errors.
var (
	ErrWatcherRunning = errors.New("watcher is already running")
)

// ParseError records a card file whose front section could not be parsed.
// It is recoverable: the loader skips the file with a warning and the load
// otherwise succeeds.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
