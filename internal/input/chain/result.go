package chain

import "github.com/dshills/keychord/internal/input/key"

// Outcome is the kind of a lookup result.
type Outcome uint8

const (
	// NoMatch means the sequence is not bound and no bound sequence
	// starts with it.
	NoMatch Outcome = iota

	// Pending means the sequence is a strict prefix of bound sequences.
	Pending

	// Matched means the sequence is bound.
	Matched
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Matched:
		return "matched"
	default:
		return "no-match"
	}
}

// Result is the outcome of Trie.Lookup.
type Result[V any] struct {
	Outcome Outcome

	// Value is the bound value when Outcome is Matched.
	Value V

	// Next lists, in ascending order, the symbols that extend the sequence
	// toward a binding when Outcome is Pending.
	Next []key.Symbol
}

// IsMatched returns true for a Matched result.
func (r Result[V]) IsMatched() bool {
	return r.Outcome == Matched
}

// IsPending returns true for a Pending result.
func (r Result[V]) IsPending() bool {
	return r.Outcome == Pending
}
