package policy

import (
	"fmt"

	"github.com/hupe1980/gsfs/featureset"
	"github.com/hupe1980/gsfs/lattice"
)

// TerminationKind selects when an episode stops descending.
type TerminationKind uint8

const (
	// FirstNewOrFull stops at a node that was never visited or that holds
	// every feature of the universe.
	FirstNewOrFull TerminationKind = iota
)

// ParseTermination resolves an end strategy name. "default" and the empty
// name select FirstNewOrFull.
func ParseTermination(name string) (TerminationKind, error) {
	switch name {
	case "", "default", "first_new_or_full":
		return FirstNewOrFull, nil
	}
	return 0, &ConfigError{Field: "end_strategy", Value: name, Reason: "unsupported"}
}

func (k TerminationKind) String() string {
	if k == FirstNewOrFull {
		return "default"
	}
	return fmt.Sprintf("TerminationKind(%d)", uint8(k))
}

// Terminator decides whether an episode has reached its leaf.
type Terminator struct {
	kind TerminationKind
	full featureset.Set
}

// NewTerminator returns a terminator over universe u.
func NewTerminator(kind TerminationKind, u *featureset.Universe) (*Terminator, error) {
	if kind != FirstNewOrFull {
		return nil, &ConfigError{Field: "end_strategy", Value: kind, Reason: "unsupported"}
	}
	return &Terminator{kind: kind, full: u.Full()}, nil
}

// Kind returns the termination variant.
func (t *Terminator) Kind() TerminationKind { return t.kind }

// Done reports whether n ends the current episode.
func (t *Terminator) Done(n *lattice.Node) bool {
	if n.Visits() == 0 {
		return true
	}
	return n.Features().Equal(t.full)
}
