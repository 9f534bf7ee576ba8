package chain

import (
	"errors"
	"fmt"

	"github.com/dshills/keychord/internal/input/key"
)

// ErrPrefixConflict matches every *PrefixConflictError via errors.Is.
var ErrPrefixConflict = errors.New("prefix conflict")

// ConflictKind says which of the two sequences is the offending prefix.
type ConflictKind uint8

const (
	// ExistingIsExtension means the new sequence is a strict prefix of a
	// stored one.
	ExistingIsExtension ConflictKind = iota + 1

	// NewIsExtension means a stored sequence is a strict prefix of the new
	// one.
	NewIsExtension
)

// String returns the kind name.
func (k ConflictKind) String() string {
	switch k {
	case ExistingIsExtension:
		return "existing-is-extension"
	case NewIsExtension:
		return "new-is-extension"
	default:
		return "unknown"
	}
}

// PrefixConflictError is returned by Insert when the new sequence and a
// stored sequence are prefixes of one another.
type PrefixConflictError struct {
	Kind ConflictKind

	// Sequence is the sequence that was being inserted.
	Sequence key.Sequence

	// Existing is the stored sequence it collides with. For
	// ExistingIsExtension this is the first (smallest) such extension.
	Existing key.Sequence
}

func (e *PrefixConflictError) Error() string {
	switch e.Kind {
	case ExistingIsExtension:
		return fmt.Sprintf("prefix conflict: %q is a prefix of bound chain %q", e.Sequence.String(), e.Existing.String())
	case NewIsExtension:
		return fmt.Sprintf("prefix conflict: bound chain %q is a prefix of %q", e.Existing.String(), e.Sequence.String())
	default:
		return "prefix conflict"
	}
}

// Unwrap returns ErrPrefixConflict.
func (e *PrefixConflictError) Unwrap() error {
	return ErrPrefixConflict
}
