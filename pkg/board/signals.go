package board

import (
	"time"

	"github.com/corkline/corkline/pkg/types"
)

// SignalKind enumerates the card lifecycle signals fed to collaborators
// (the effects layer, mainly). Signals carry no obligation back into the
// store; they are emitted after persistence succeeds.
type SignalKind int

const (
	SignalCreated SignalKind = iota
	SignalMoved
	SignalCompleted
	SignalDeleted
)

// String returns the signal kind's wire-friendly name.
func (k SignalKind) String() string {
	switch k {
	case SignalCreated:
		return "created"
	case SignalMoved:
		return "moved"
	case SignalCompleted:
		return "completed"
	case SignalDeleted:
		return "deleted"
	}
	return "unknown"
}

// Signal is one card lifecycle event. Card is a copy taken at emission
// time. FromColumn is set for moves; Age is the card's lifetime and is set
// for completions.
type Signal struct {
	Kind       SignalKind
	Card       *types.Card
	FromColumn string
	Age        time.Duration
}
