package key

import (
	"strings"
)

// Sequence is an ordered series of symbols forming a chord.
// Examples: "gg", "<Space><Space>", "abc"
type Sequence []Symbol

// SequenceOf returns the sequence of the runes in s, one symbol per rune.
// No notation is interpreted; use ParseSequence for "<Space>" and friends.
func SequenceOf(s string) Sequence {
	seq := make(Sequence, 0, len(s))
	for _, r := range s {
		seq = append(seq, Symbol(r))
	}
	return seq
}

// Len returns the number of symbols in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty returns true if the sequence has no symbols.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Append returns a new sequence with sym added at the end.
// The receiver is never modified, even when it has spare capacity.
func (s Sequence) Append(sym Symbol) Sequence {
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, sym)
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Equals returns true if two sequences hold the same symbols.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, sym := range s {
		if sym != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with prefix.
// Every sequence has the empty prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)].Equals(prefix)
}

// Runes returns the raw characters of the sequence.
func (s Sequence) Runes() string {
	var sb strings.Builder
	for _, sym := range s {
		sb.WriteRune(rune(sym))
	}
	return sb.String()
}

// String returns the notation form of the sequence.
// Examples: "gg", "<Space><Space>", "a<lt>b"
func (s Sequence) String() string {
	var sb strings.Builder
	for _, sym := range s {
		sb.WriteString(sym.String())
	}
	return sb.String()
}
